// Package report renders session records for the terminal and for other
// programs.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
)

const (
	dateLayout = "2006-01-02"

	titleMaxWidth   = 40
	titleCutWidth   = 37
	titleEllipsis   = "…"
	noFilesMarker   = "—"
	maxFileTypes    = 4
	emptyTableLabel = "No sessions found."
)

// Table renders records as markdown tables grouped by calendar day, newest
// day first. now decides which days are labelled Today and Yesterday.
func Table(records []sessionhistory.Record, now time.Time) string {
	if len(records) == 0 {
		return emptyTableLabel
	}
	loc := now.Location()

	byDate := map[string][]sessionhistory.Record{}
	var dates []string
	for _, rec := range records {
		d := recordDate(rec, loc)
		if _, ok := byDate[d]; !ok {
			dates = append(dates, d)
		}
		byDate[d] = append(byDate[d], rec)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	var b strings.Builder
	for i, d := range dates {
		if i > 0 {
			b.WriteString("\n")
		}
		group := byDate[d]
		sessionhistory.SortByRecency(group)

		b.WriteString("## ")
		b.WriteString(dateHeader(d, today, yesterday))
		b.WriteString("\n\n")

		t := table.NewWriter()
		t.Style().Format.Header = text.FormatDefault
		t.AppendHeader(table.Row{"Time", "Name", "Files"})
		for _, rec := range group {
			t.AppendRow(table.Row{recordClock(rec, loc), TruncateTitle(rec.Title), FileTypesSummary(rec.FileTypes)})
		}
		b.WriteString(t.RenderMarkdown())
		b.WriteString("\n")
	}
	return b.String()
}

func dateHeader(date, today, yesterday string) string {
	switch date {
	case today:
		return "Today"
	case yesterday:
		return "Yesterday"
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 02")
}

func recordDate(rec sessionhistory.Record, loc *time.Location) string {
	if rec.ModifiedDate != "" {
		return rec.ModifiedDate
	}
	return rec.Time().In(loc).Format(dateLayout)
}

func recordClock(rec sessionhistory.Record, loc *time.Location) string {
	if rec.ModifiedTime != "" {
		return rec.ModifiedTime
	}
	return rec.Time().In(loc).Format("15:04")
}

// TruncateTitle shortens titles wider than 40 columns to 37 columns plus an
// ellipsis.
func TruncateTitle(title string) string {
	if runewidth.StringWidth(title) <= titleMaxWidth {
		return title
	}
	return runewidth.Truncate(title, titleCutWidth, "") + titleEllipsis
}

// FileTypesSummary renders the most frequent extensions, e.g. ".py, .md (3)".
// The count in parentheses covers every recorded file, not only the ones
// listed.
func FileTypesSummary(ft sessionhistory.FileTypes) string {
	if len(ft) == 0 {
		return noFilesMarker
	}
	top := ft.Top(maxFileTypes)
	parts := make([]string, 0, len(top))
	for _, c := range top {
		parts = append(parts, "."+c.Ext)
	}
	out := strings.Join(parts, ", ")
	if total := ft.Total(); total > 0 {
		out += " (" + strconv.Itoa(total) + ")"
	}
	return out
}
