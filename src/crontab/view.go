package crontab

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yashkumarverma/cronline/src/cronitem"
	"gopkg.in/yaml.v3"
)

// Format selects how entries are printed
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Field kinds as they appear in json and yaml output
const (
	KindAll      = "all"
	KindSingle   = "single"
	KindMultiple = "multiple"
	KindInterval = "interval"
)

// ParseFormat accepts text, json or yaml in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected: text, json, yaml)", s)
	}
}

// FieldView is the structured form of one time field. Values holds the single
// value, the listed values, or the interval bounds.
type FieldView struct {
	Kind   string `json:"kind" yaml:"kind"`
	Values []int  `json:"values,omitempty" yaml:"values,omitempty,flow"`
}

// EntryView is the structured form of an entry
type EntryView struct {
	Line       int       `json:"line" yaml:"line"`
	Minute     FieldView `json:"minute" yaml:"minute"`
	Hour       FieldView `json:"hour" yaml:"hour"`
	DayOfMonth FieldView `json:"day_of_month" yaml:"day_of_month"`
	Month      FieldView `json:"month" yaml:"month"`
	DayOfWeek  FieldView `json:"day_of_week" yaml:"day_of_week"`
	Command    string    `json:"command" yaml:"command"`
}

func NewFieldView(item cronitem.TimeItem) FieldView {
	switch v := item.(type) {
	case cronitem.SingleValue:
		return FieldView{Kind: KindSingle, Values: []int{int(v)}}
	case cronitem.MultipleValues:
		values := make([]int, len(v))
		for i, n := range v {
			values[i] = int(n)
		}
		return FieldView{Kind: KindMultiple, Values: values}
	case cronitem.Interval:
		return FieldView{Kind: KindInterval, Values: []int{int(v.Start), int(v.End)}}
	default:
		return FieldView{Kind: KindAll}
	}
}

func NewEntryView(entry Entry) EntryView {
	item := entry.Item
	return EntryView{
		Line:       entry.Line,
		Minute:     NewFieldView(item.Minute),
		Hour:       NewFieldView(item.Hour),
		DayOfMonth: NewFieldView(item.DayOfMonth),
		Month:      NewFieldView(item.Month),
		DayOfWeek:  NewFieldView(item.DayOfWeek),
		Command:    item.Command,
	}
}

// Encode writes entries to w. Text output is one canonical line per entry.
func Encode(w io.Writer, format Format, entries []Entry) error {
	switch format {
	case FormatText:
		for _, entry := range entries {
			if _, err := fmt.Fprintln(w, entry.Item.String()); err != nil {
				return fmt.Errorf("failed to write entry: %w", err)
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views(entries)); err != nil {
			return fmt.Errorf("failed to encode entries as json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views(entries)); err != nil {
			return fmt.Errorf("failed to encode entries as yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func views(entries []Entry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewEntryView(entry))
	}
	return out
}
