package sessionhistory

import (
	"errors"
	"strings"
)

var ErrEmptyQuery = errors.New("search query must not be empty")

// DefaultSearchPool is how many listed sessions a search looks through
// before filtering down to the requested limit.
const DefaultSearchPool = 500

func (r Record) searchText() string {
	return strings.ToLower(strings.Join([]string{r.Title, r.WorkspaceName, r.Subtitle}, " "))
}

// Matches reports whether query occurs in the title, workspace name or
// subtitle, ignoring case. A blank query matches nothing.
func (r Record) Matches(query string) bool {
	if validateQuery(query) != nil {
		return false
	}
	return strings.Contains(r.searchText(), strings.ToLower(query))
}

// Filter keeps the records whose title, workspace name or subtitle contain
// query, ignoring case, and returns at most limit of them.
func Filter(records []Record, query string, limit int) ([]Record, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, nil
	}
	var out []Record
	for _, rec := range records {
		if !rec.Matches(query) {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}
