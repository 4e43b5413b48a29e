// Package data loads recorded sensor packages from CSV and JSON files.
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ftracker/internal/workout"

	"github.com/tidwall/gjson"
)

// TypeColumn is the CSV header naming the workout type code.
const TypeColumn = "type"

// ErrEmpty is returned for a data file without any package.
var ErrEmpty = errors.New("data file is empty")

// LoadFile loads sensor packages from a .csv or .json file.
// Relative paths are resolved against baseDir.
func LoadFile(path, baseDir string) ([]workout.Package, error) {
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var pkgs []workout.Package
	var err error

	switch ext {
	case ".csv":
		pkgs, err = loadCSV(path)
	case ".json":
		pkgs, err = loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q (use .csv or .json)", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return pkgs, nil
}

// loadCSV reads a header row followed by one package per row. The type column
// may sit anywhere; every other column is a positional argument in header
// order. Blank cells are skipped so different workout types can share a sheet.
func loadCSV(path string) ([]workout.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must have header row and at least one data row")
	}

	typeIdx := -1
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), TypeColumn) {
			typeIdx = i
			break
		}
	}
	if typeIdx < 0 {
		return nil, fmt.Errorf("CSV header has no %q column", TypeColumn)
	}

	pkgs := make([]workout.Package, 0, len(records)-1)
	for n, record := range records[1:] {
		line := n + 2
		if typeIdx >= len(record) {
			return nil, fmt.Errorf("line %d: missing %s", line, TypeColumn)
		}
		pkg := workout.Package{Type: workout.Code(strings.TrimSpace(record[typeIdx]))}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if i == typeIdx || cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, header(records[0], i), err)
			}
			pkg.Args = append(pkg.Args, v)
		}
		pkgs = append(pkgs, pkg)
	}

	return pkgs, nil
}

func header(headers []string, i int) string {
	if i < len(headers) {
		return headers[i]
	}
	return strconv.Itoa(i)
}

// loadJSON reads an array of {"type": ..., "args": [...]} objects.
func loadJSON(path string) ([]workout.Package, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(raw)
}

// ParseJSON decodes packages from a JSON array.
func ParseJSON(raw []byte) ([]workout.Package, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid JSON")
	}

	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("JSON must be an array of packages")
	}

	items := root.Array()
	pkgs := make([]workout.Package, 0, len(items))
	for i, item := range items {
		typ := item.Get("type")
		if typ.Type != gjson.String {
			return nil, fmt.Errorf("package %d: %q must be a string", i, "type")
		}
		args := item.Get("args")
		if !args.IsArray() {
			return nil, fmt.Errorf("package %d: %q must be an array", i, "args")
		}

		pkg := workout.Package{Type: workout.Code(typ.String())}
		for j, a := range args.Array() {
			if a.Type != gjson.Number {
				return nil, fmt.Errorf("package %d: arg %d is not a number: %s", i, j, a.Raw)
			}
			pkg.Args = append(pkg.Args, a.Float())
		}
		pkgs = append(pkgs, pkg)
	}

	return pkgs, nil
}
