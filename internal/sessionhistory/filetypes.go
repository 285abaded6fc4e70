package sessionhistory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const maxExtensionLen = 8

type FileTypeCount struct {
	Ext   string
	Count int
}

// FileTypes maps file extensions to occurrence counts while keeping the order
// in which each extension was first seen. It encodes as a JSON/YAML object.
type FileTypes []FileTypeCount

// ParseFileTypes counts file extensions mentioned in a free-text subtitle
// such as "main.go, util.go README.md".
func ParseFileTypes(subtitle string) FileTypes {
	var out FileTypes
	for _, part := range strings.Fields(strings.ReplaceAll(subtitle, ",", " ")) {
		idx := strings.LastIndex(part, ".")
		if idx < 0 {
			continue
		}
		ext := strings.ToLower(part[idx+1:])
		if !validExtension(ext) {
			continue
		}
		out = out.add(ext, 1)
	}
	return out
}

func validExtension(ext string) bool {
	if ext == "" || len([]rune(ext)) >= maxExtensionLen {
		return false
	}
	for _, r := range ext {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (ft FileTypes) add(ext string, n int) FileTypes {
	for i := range ft {
		if ft[i].Ext == ext {
			ft[i].Count += n
			return ft
		}
	}
	return append(ft, FileTypeCount{Ext: ext, Count: n})
}

func (ft FileTypes) Count(ext string) int {
	for _, c := range ft {
		if c.Ext == ext {
			return c.Count
		}
	}
	return 0
}

func (ft FileTypes) Total() int {
	total := 0
	for _, c := range ft {
		total += c.Count
	}
	return total
}

// Top returns up to n entries ordered by descending count; equal counts keep
// their first-seen order.
func (ft FileTypes) Top(n int) FileTypes {
	sorted := append(FileTypes(nil), ft...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (ft FileTypes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range ft {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Ext)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", c.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ft *FileTypes) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("file types: invalid JSON")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*ft = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("file types: expected object, got %s", res.Type)
	}
	var out FileTypes
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = fmt.Errorf("file types: count for %q is not a number", key.String())
			return false
		}
		out = out.add(key.String(), int(value.Int()))
		return true
	})
	if err != nil {
		return err
	}
	*ft = out
	return nil
}

func (ft FileTypes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(ft) == 0 {
		node.Style = yaml.FlowStyle
	}
	for _, c := range ft {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Ext},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", c.Count)},
		)
	}
	return node, nil
}

func (ft *FileTypes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*ft = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("file types: expected mapping at line %d", value.Line)
	}
	var out FileTypes
	for i := 0; i+1 < len(value.Content); i += 2 {
		var count int
		if err := value.Content[i+1].Decode(&count); err != nil {
			return fmt.Errorf("file types: %w", err)
		}
		out = out.add(value.Content[i].Value, count)
	}
	*ft = out
	return nil
}
