package sessionhistory

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// The readers below take one field of a loosely-typed JSON object. A missing
// or null field yields the zero value; a field of the wrong shape is an
// error so the caller can drop the whole entry instead of guessing.

func stringField(obj gjson.Result, key string) (string, error) {
	v := obj.Get(gjson.Escape(key))
	switch v.Type {
	case gjson.Null:
		return "", nil
	case gjson.String:
		return v.Str, nil
	}
	return "", fmt.Errorf("%s: expected string, got %s", key, v.Type)
}

func intField(obj gjson.Result, key string) (int, error) {
	v := obj.Get(gjson.Escape(key))
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		return int(v.Int()), nil
	}
	return 0, fmt.Errorf("%s: expected number, got %s", key, v.Type)
}

func boolField(obj gjson.Result, key string) (bool, error) {
	v := obj.Get(gjson.Escape(key))
	switch v.Type {
	case gjson.Null:
		return false, nil
	case gjson.True, gjson.False:
		return v.Bool(), nil
	}
	return false, fmt.Errorf("%s: expected bool, got %s", key, v.Type)
}

// millisField reads an epoch-milliseconds value and reports it in seconds.
// Zero counts as absent.
func millisField(key string) func(gjson.Result) (float64, bool, error) {
	return func(obj gjson.Result) (float64, bool, error) {
		v := obj.Get(gjson.Escape(key))
		switch v.Type {
		case gjson.Null:
			return 0, false, nil
		case gjson.Number:
			if v.Num == 0 {
				return 0, false, nil
			}
			return v.Num / 1000, true, nil
		}
		return 0, false, fmt.Errorf("%s: expected number, got %s", key, v.Type)
	}
}

type timestampSource struct {
	name    string
	extract func(gjson.Result) (float64, bool, error)
}

// sessionTimestampSources lists where a session's time comes from, most
// preferred first. The store's own mtime is the final fallback.
var sessionTimestampSources = []timestampSource{
	{name: "lastUpdatedAt", extract: millisField("lastUpdatedAt")},
	{name: "createdAt", extract: millisField("createdAt")},
}

func resolveTimestamp(entry gjson.Result, sources []timestampSource, fallback float64) (float64, error) {
	for _, src := range sources {
		ts, ok, err := src.extract(entry)
		if err != nil {
			return 0, err
		}
		if ok {
			return ts, nil
		}
	}
	return fallback, nil
}
