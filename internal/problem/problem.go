// SPDX-License-Identifier: MIT

// Package problem reads assignment problem files: an initial square cost
// matrix followed by an ordered script of row and column updates. Files may
// be JSON, TOML or YAML; the format is chosen by file extension.
//
// Example (TOML):
//
//	name = "three"
//	cost = [[4, 1, 3], [2, 0, 5], [3, 2, 2]]
//
//	[[updates]]
//	axis  = "row"
//	lines = [{ index = 2, values = [0, 9, 9] }]
package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dynhung/hungarian"
)

// Format is a supported problem file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	// ErrFormat is returned for an unknown file extension or format name.
	ErrFormat = errors.New("problem: unsupported format")

	// ErrInvalid wraps structural validation failures.
	ErrInvalid = errors.New("problem: invalid problem")
)

// Problem is a cost matrix plus the updates to apply to it, in order.
type Problem struct {
	Name    string      `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Cost    [][]float64 `json:"cost" toml:"cost" yaml:"cost" validate:"required,min=1"`
	Updates []Update    `json:"updates,omitempty" toml:"updates" yaml:"updates,omitempty" validate:"dive"`
}

// Update is one scripted change. Either Cost (a complete replacement matrix)
// together with Changed, or Lines (only the replaced rows/columns) is set.
type Update struct {
	Axis    string      `json:"axis" toml:"axis" yaml:"axis" validate:"required,oneof=row column"`
	Changed []int       `json:"changed,omitempty" toml:"changed" yaml:"changed,omitempty"`
	Cost    [][]float64 `json:"cost,omitempty" toml:"cost" yaml:"cost,omitempty" validate:"required_without=Lines"`
	Lines   []Line      `json:"lines,omitempty" toml:"lines" yaml:"lines,omitempty" validate:"required_without=Cost,excluded_with=Cost,dive"`
}

// Line replaces one row or column.
type Line struct {
	Index  int       `json:"index" toml:"index" yaml:"index" validate:"gte=0"`
	Values []float64 `json:"values" toml:"values" yaml:"values" validate:"required,min=1"`
}

// FormatOf maps a file extension to its Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Load reads and validates the problem file at path.
func Load(path string) (*Problem, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode reads a problem in the given format from r and validates it.
func Decode(r io.Reader, format Format) (*Problem, error) {
	var p Problem
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("problem: decode json: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
			return nil, fmt.Errorf("problem: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("problem: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, p *Problem, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(p)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}

	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// Validate checks the structure of p: tags first, then that Lines match
// the matrix order. Cost values are checked by the solver itself.
func (p *Problem) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	n := len(p.Cost)
	for k, u := range p.Updates {
		for _, l := range u.Lines {
			if len(l.Values) != n {
				return fmt.Errorf("%w: update %d: %s %d has %d values, want %d",
					ErrInvalid, k, u.Axis, l.Index, len(l.Values), n)
			}
		}
	}

	return nil
}

// NewSolver solves the initial cost matrix.
func (p *Problem) NewSolver(opts ...hungarian.Option) (*hungarian.Solver, error) {
	return hungarian.NewFromRows(p.Cost, opts...)
}

// AxisValue returns the hungarian axis named by u.Axis.
func (u Update) AxisValue() hungarian.Axis {
	if u.Axis == hungarian.AxisCol.String() {
		return hungarian.AxisCol
	}

	return hungarian.AxisRow
}

// Apply runs u against s.
func (u Update) Apply(s *hungarian.Solver) error {
	axis := u.AxisValue()
	if len(u.Lines) > 0 {
		values := make(map[int][]float64, len(u.Lines))
		for _, l := range u.Lines {
			values[l.Index] = l.Values
		}
		if axis == hungarian.AxisCol {
			return s.SetCols(values)
		}

		return s.SetRows(values)
	}

	flat := make([]float64, 0, len(u.Cost)*len(u.Cost))
	for _, row := range u.Cost {
		if len(row) != len(u.Cost) {
			return &hungarian.ShapeError{Rows: len(u.Cost), Cols: len(row), Want: s.N()}
		}
		flat = append(flat, row...)
	}
	if axis == hungarian.AxisCol {
		return s.UpdateColsFlat(flat, u.Changed)
	}

	return s.UpdateRowsFlat(flat, u.Changed)
}
