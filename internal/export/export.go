// Package export writes conversion history as CSV, JSON or YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/unitconv/internal/history"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML}

// CSVHeader is the header row of CSV exports.
var CSVHeader = []string{"Date", "Heure", "Conversion"}

// CSVDelimiter separates CSV fields.
const CSVDelimiter = ';'

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "yml" {
		f = FormatYAML
	}
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unsupported export format %q (available: csv, json, yaml)", s)
	}
	return f, nil
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Record is the serialized form of a history entry.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Quantity  string    `json:"quantity" yaml:"quantity"`
	Value     float64   `json:"value" yaml:"value"`
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Result    float64   `json:"result" yaml:"result"`
	Text      string    `json:"text" yaml:"text"`
}

// NewRecord converts a history entry to a Record.
func NewRecord(e history.Entry) Record {
	return Record{
		ID:        e.ID,
		CreatedAt: e.CreatedAt.UTC(),
		Quantity:  e.Quantity,
		Value:     e.Value,
		From:      e.From,
		To:        e.To,
		Result:    e.Result,
		Text:      e.Text(),
	}
}

// Write exports entries to w in format f.
func Write(w io.Writer, f Format, entries []history.Entry) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatJSON:
		return WriteJSON(w, entries)
	case FormatYAML:
		return WriteYAML(w, entries)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteCSV writes one "Date;Heure;Conversion" row per entry.
func WriteCSV(w io.Writer, entries []history.Entry) error {
	cw := csv.NewWriter(w)
	cw.Comma = CSVDelimiter

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		ts := e.CreatedAt.UTC()
		row := []string{ts.Format(time.DateOnly), ts.Format(time.TimeOnly), e.Text()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func records(entries []history.Entry) []Record {
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewRecord(e))
	}
	return out
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []history.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(entries))
}

// WriteYAML writes entries as a YAML sequence.
func WriteYAML(w io.Writer, entries []history.Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(entries)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
