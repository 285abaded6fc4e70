package sessionhistory

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFileTypes(t *testing.T) {
	got := ParseFileTypes("a.py, b.py c.md")
	want := FileTypes{{Ext: "py", Count: 2}, {Ext: "md", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseFileTypes = %#v, want %#v", got, want)
	}
	if got.Total() != 3 || got.Count("py") != 2 || got.Count("go") != 0 {
		t.Fatalf("unexpected counts: %#v", got)
	}
}

func TestParseFileTypesSkipsInvalid(t *testing.T) {
	cases := map[string]FileTypes{
		"":                      nil,
		"README":                nil,
		"trailing.":             nil,
		"archive.longextension": nil,
		"weird.p-y":             nil,
		"Main.GO util.go":       {{Ext: "go", Count: 2}},
		"v1.2.tar.gz":           {{Ext: "gz", Count: 1}},
		"x.abcdefg":             {{Ext: "abcdefg", Count: 1}},
	}
	for in, want := range cases {
		if got := ParseFileTypes(in); !reflect.DeepEqual(got, want) {
			t.Fatalf("ParseFileTypes(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestFileTypesTop(t *testing.T) {
	ft := ParseFileTypes("a.md b.go c.go d.ts e.ts f.rs g.py")
	got := ft.Top(3)
	want := FileTypes{{Ext: "go", Count: 2}, {Ext: "ts", Count: 2}, {Ext: "md", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Top(3) = %#v, want %#v", got, want)
	}
	if ft[0].Ext != "md" {
		t.Fatalf("Top must not reorder the receiver: %#v", ft)
	}
}

func TestFileTypesJSONKeepsOrder(t *testing.T) {
	ft := FileTypes{{Ext: "ts", Count: 1}, {Ext: "go", Count: 3}}
	data, err := json.Marshal(ft)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"ts":1,"go":3}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
	var back FileTypes
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, ft) {
		t.Fatalf("round trip = %#v, want %#v", back, ft)
	}

	empty, _ := json.Marshal(FileTypes(nil))
	if string(empty) != "{}" {
		t.Fatalf("expected empty object, got %s", empty)
	}
	if err := json.Unmarshal([]byte(`{"go":"x"}`), &back); err == nil {
		t.Fatalf("expected error for non-numeric count")
	}
	if err := json.Unmarshal([]byte(`[1]`), &back); err == nil {
		t.Fatalf("expected error for non-object")
	}
}

func TestFileTypesYAMLKeepsOrder(t *testing.T) {
	ft := FileTypes{{Ext: "ts", Count: 1}, {Ext: "go", Count: 3}}
	data, err := yaml.Marshal(ft)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Index(string(data), "ts:") > strings.Index(string(data), "go:") {
		t.Fatalf("expected insertion order, got:\n%s", data)
	}
	var back FileTypes
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, ft) {
		t.Fatalf("round trip = %#v, want %#v", back, ft)
	}

	empty, err := yaml.Marshal(FileTypes(nil))
	if err != nil {
		t.Fatalf("marshal empty: %v", err)
	}
	if strings.TrimSpace(string(empty)) != "{}" {
		t.Fatalf("expected flow mapping, got %q", empty)
	}
}
