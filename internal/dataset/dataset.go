// Package dataset reads tab-delimited experimental data files.
//
// Layout:
//
//	id       s1       s2       s3       s4
//	class    ctrl     ctrl     treated  treated
//	glc      10       10.5     40       41
//	KEGG:C00092  3    3.2      1.1
//
// The first row names the samples, the second assigns each sample a class
// label, and every further row holds one entity keyed by its first column.
// Empty and non-numeric cells are skipped; the file is expected to be
// filtered already.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/metaboviz/pkg/analysis"
)

// ErrMalformed is returned when the header rows are missing or inconsistent.
var ErrMalformed = errors.New("dataset: malformed data file")

// Read parses a tab-delimited data file into a Dataset.
func Read(r io.Reader) (*analysis.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing sample header", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sample header: %w", err)
	}
	classes, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing class row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read class row: %w", err)
	}
	if len(classes) < len(header) {
		return nil, fmt.Errorf("%w: %d samples but %d class labels", ErrMalformed, len(header)-1, len(classes)-1)
	}

	d := analysis.NewDataset()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		for col := 1; col < len(row) && col < len(header); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			d.Add(key, strings.TrimSpace(classes[col]), v)
		}
	}
	return d, nil
}

// Load reads path from fsys. Paths follow io/fs rules: slash separated and
// relative to the file system root.
func Load(fsys hackpadfs.FS, path string) (*analysis.Dataset, error) {
	content, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	return Read(bytes.NewReader(content))
}
