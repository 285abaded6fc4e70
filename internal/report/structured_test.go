package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
)

func sampleRecords() []sessionhistory.Record {
	rec := sessionhistory.Record{
		Provider:      sessionhistory.ProviderCursor,
		WorkspaceName: "app",
		WorkspacePath: "/src/app",
		Title:         "Refactor <cache>",
		Timestamp:     1700000000.5,
		Modified:      "2023-11-14T22:13:20Z",
		ModifiedDate:  "2023-11-14",
		ModifiedTime:  "22:13",
		Stats:         sessionhistory.Stats{LinesAdded: 3, LinesRemoved: 1, FilesChanged: 2},
		FileTypes:     sessionhistory.ParseFileTypes("main.go util.go README.md"),
		MessageCount:  5,
		Subtitle:      "main.go util.go README.md",
		Archived:      true,
	}
	return []sessionhistory.Record{rec}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"table": FormatTable,
		"JSON":  FormatJSON,
		" yaml": FormatYAML,
		"yml":   FormatYAML,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil || !strings.Contains(err.Error(), "table, json, yaml") {
		t.Fatalf("expected error listing formats, got %v", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	records := sampleRecords()
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, records, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"title": "Refactor <cache>"`) {
		t.Fatalf("expected unescaped title in output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"file_types": {`) {
		t.Fatalf("expected file_types object:\n%s", buf.String())
	}
	var back []sessionhistory.Record
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, records) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, records)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	records := sampleRecords()
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, records, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var back []sessionhistory.Record
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, records) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, records)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, nil, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected [], got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, FormatYAML, nil, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected [], got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, FormatTable, nil, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "No sessions found.\n" {
		t.Fatalf("unexpected table output %q", buf.String())
	}

	if err := Write(&buf, Format("csv"), nil, time.Now()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteProviders(t *testing.T) {
	infos := []sessionhistory.ProviderInfo{
		{Name: "cursor", Available: true, Paths: []string{"/a", "/b"}},
		{Name: "claude", Available: false, Paths: []string{}},
	}

	var buf bytes.Buffer
	if err := WriteProviders(&buf, FormatTable, infos); err != nil {
		t.Fatalf("WriteProviders: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"| Provider | Available | Paths |", "| cursor | yes | /a, /b |", "| claude | no | — |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteProviders(&buf, FormatJSON, infos); err != nil {
		t.Fatalf("WriteProviders: %v", err)
	}
	var back []sessionhistory.ProviderInfo
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, infos) {
		t.Fatalf("round trip mismatch: %#v", back)
	}
}
