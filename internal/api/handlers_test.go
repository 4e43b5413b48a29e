package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ftracker/internal/workout"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewHandler(Options{Log: logger}))
	t.Cleanup(srv.Close)
	return srv
}

func postReports(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	res, err := http.Post(srv.URL+"/api/reports", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/reports: %v", err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestReports(t *testing.T) {
	srv := newTestServer(t)

	res := postReports(t, srv, `{"packages": [
		{"type": "SWM", "args": [720, 1, 80, 25, 40]},
		{"type": "RUN", "args": [15000, 1, 75]},
		{"type": "WLK", "args": [9000, 1, 75, 180]}
	]}`)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body reportsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(body.Reports))
	}
	if body.Reports[0].Calories != 336 {
		t.Errorf("swimming calories = %v", body.Reports[0].Calories)
	}
	if body.Reports[1].Calories != 699.75 {
		t.Errorf("running calories = %v", body.Reports[1].Calories)
	}
	if body.Reports[2].TrainingType != "SportsWalking" {
		t.Errorf("walking type = %q", body.Reports[2].TrainingType)
	}
	if !strings.HasPrefix(body.Reports[2].Message, "Тип тренировки: SportsWalking;") {
		t.Errorf("message = %q", body.Reports[2].Message)
	}
}

func TestReports_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"invalid json", `{"packages": [`, "invalid JSON"},
		{"missing packages", `{}`, "packages"},
		{"unknown type", `{"packages": [{"type": "XYZ", "args": [1, 2, 3]}]}`, "unknown workout type"},
		{"wrong arity", `{"packages": [{"type": "RUN", "args": [15000, 1]}]}`, "argument mismatch"},
		{"string arg", `{"packages": [{"type": "RUN", "args": ["15000", 1, 75]}]}`, "not a number"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postReports(t, srv, tt.body)
			if res.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", res.StatusCode)
			}
			var body errorResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(body.Error, tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", body.Error, tt.wantErr)
			}
		})
	}
}

func TestWorkouts(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/api/workouts")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var kinds []workout.Kind
	if err := json.NewDecoder(res.Body).Decode(&kinds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(kinds) != 3 {
		t.Fatalf("expected 3 workout kinds, got %d", len(kinds))
	}
	if kinds[2].Code != workout.CodeSwimming || len(kinds[2].Fields) != 5 {
		t.Errorf("unexpected swimming kind: %+v", kinds[2])
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("got %d %q", res.StatusCode, body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/api/reports")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", res.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(Options{Log: logger, AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://other.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Access-Control-Allow-Origin %q for disallowed origin", got)
	}
}

func TestReports_BodyTooLarge(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(Options{Log: logger})

	pkg := `{"type": "RUN", "args": [15000, 1, 75]},`
	body := `{"packages": [` + strings.Repeat(pkg, maxBodySize/len(pkg)+1) + `{"type": "RUN", "args": [15000, 1, 75]}]}`

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
	var got errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(got.Error, "exceeds") {
		t.Errorf("error = %q", got.Error)
	}
}

func TestHandlers_ZeroValue(t *testing.T) {
	h := &Handlers{}

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"packages": [{"type": "XYZ", "args": []}]}`))
	rr := httptest.NewRecorder()
	h.Reports(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"packages": [{"type": "RUN", "args": [15000, 1, 75]}]}`))
	rr = httptest.NewRecorder()
	h.Reports(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
