package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var formats = []Format{FormatTable, FormatJSON, FormatYAML}

func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, 0, len(formats))
	for _, known := range formats {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown format %q (expected one of: %s)", raw, strings.Join(names, ", "))
}

// Write renders records in the given format.
func Write(w io.Writer, format Format, records []sessionhistory.Record, now time.Time) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	case FormatTable, "":
		_, err := fmt.Fprintln(w, Table(records, now))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

// WriteJSON writes records as an indented JSON array; an empty result is
// written as [] rather than null.
func WriteJSON(w io.Writer, v any) error {
	v = nonNil(v)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v any) error {
	v = nonNil(v)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func nonNil(v any) any {
	switch vv := v.(type) {
	case []sessionhistory.Record:
		if vv == nil {
			return []sessionhistory.Record{}
		}
	case []sessionhistory.ProviderInfo:
		if vv == nil {
			return []sessionhistory.ProviderInfo{}
		}
	}
	return v
}

// WriteProviders renders the provider listing. The table format becomes a
// markdown table; the structured formats carry the same fields.
func WriteProviders(w io.Writer, format Format, infos []sessionhistory.ProviderInfo) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, infos)
	case FormatYAML:
		return WriteYAML(w, infos)
	case FormatTable, "":
		t := table.NewWriter()
		t.Style().Format.Header = text.FormatDefault
		t.AppendHeader(table.Row{"Provider", "Available", "Paths"})
		for _, info := range infos {
			paths := strings.Join(info.Paths, ", ")
			if paths == "" {
				paths = noFilesMarker
			}
			avail := "no"
			if info.Available {
				avail = "yes"
			}
			t.AppendRow(table.Row{info.Name, avail, paths})
		}
		_, err := fmt.Fprintln(w, t.RenderMarkdown())
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
