// Package codelist parses reference code list CSV files into domain values.
// Pure functions: file paths or readers in, domain structs out.
package codelist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// ParseCodes reads a flat code list. The first column of every row after the
// header is the code; blank and repeated codes are dropped.
func ParseCodes(path string) ([]string, error) {
	var codes []string
	err := readFile(path, 1, func(row []string) error {
		codes = append(codes, row[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dedupe(codes, func(c string) string { return c }), nil
}

// ParseAreas reads a "sub_type,code" CSV.
func ParseAreas(path string) ([]domain.AreaCode, error) {
	var areas []domain.AreaCode
	err := readFile(path, 2, func(row []string) error {
		subType := domain.SubAreaType(row[0])
		if !subType.IsValid() {
			return fmt.Errorf("unknown sub-area type %q", row[0])
		}
		areas = append(areas, domain.AreaCode{SubType: subType, Code: row[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dedupe(areas, func(a domain.AreaCode) string { return string(a.SubType) + "/" + a.Code }), nil
}

// ParseTerms reads a "vocabulary,code" CSV.
func ParseTerms(path string) ([]domain.TaxonomyTerm, error) {
	var terms []domain.TaxonomyTerm
	err := readFile(path, 2, func(row []string) error {
		terms = append(terms, domain.TaxonomyTerm{Vocabulary: row[0], Code: row[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dedupe(terms, func(t domain.TaxonomyTerm) string { return t.Vocabulary + "/" + t.Code }), nil
}

func readFile(path string, columns int, fn func(row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := read(f, columns, fn); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// read skips the header and calls fn for every row with at least columns
// non-blank leading fields. Fields are trimmed.
func read(r io.Reader, columns int, fn func(row []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		if len(record) < columns {
			continue
		}
		row := make([]string, columns)
		blank := false
		for i := range row {
			row[i] = strings.TrimSpace(record[i])
			if row[i] == "" {
				blank = true
			}
		}
		if blank {
			continue
		}

		if err := fn(row); err != nil {
			line, _ := reader.FieldPos(0)
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		k := key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}
