// Package tui is an interactive, read-only browser for session records.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
)

var errQuit = errors.New("quit")

const (
	focusWorkspaces = "workspaces"
	focusSessions   = "sessions"
	focusDetails    = "details"
)

// Selection is the record the user picked with Enter.
type Selection struct {
	Record sessionhistory.Record
}

type Options struct {
	LoadRecords func(context.Context) ([]sessionhistory.Record, error)
	Version     string
	// Location formats session times; nil means time.Local.
	Location *time.Location
}

type uiEvent struct {
	when time.Time
	kind string
}

func (e *uiEvent) When() time.Time { return e.when }

type rect struct {
	y int
	x int
	h int
	w int
}

type layout struct {
	workspaces rect
	sessions   rect
	details    rect
	mode       string
}

type listState struct {
	selected int
	scroll   int
}

type detailsState struct {
	scroll int
}

// workspaceGroup is one entry of the left pane. The first group always
// holds every record.
type workspaceGroup struct {
	label   string
	name    string
	records []sessionhistory.Record
	all     bool
}

type sessionItem struct {
	label  string
	record sessionhistory.Record
}

type uiState struct {
	records         []sessionhistory.Record
	loadError       error
	focus           string
	lastListFocus   string
	inputMode       string
	inputBuffer     string
	workspaceFilter string
	sessionFilter   string
	workspaceState  listState
	sessionState    listState
	detailsState    detailsState

	detailsSearch    string
	detailsSearchBuf string
	detailsMatches   []int
	detailsMatchIdx  int
	detailsSearchKey string
}

func newState(records []sessionhistory.Record, err error) *uiState {
	return &uiState{
		records:       records,
		loadError:     err,
		focus:         focusWorkspaces,
		lastListFocus: focusWorkspaces,
	}
}

// SelectRecord runs the browser until the user picks a session or quits.
// Quitting returns a nil Selection and no error.
func SelectRecord(ctx context.Context, opts Options) (*Selection, error) {
	if opts.LoadRecords == nil {
		return nil, errors.New("LoadRecords is required")
	}

	records, err := opts.LoadRecords(ctx)
	state := newState(records, err)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	defer screen.Fini()

	go func() {
		<-ctx.Done()
		screen.PostEvent(&uiEvent{when: time.Now(), kind: "quit"})
	}()

	for {
		draw(screen, state, opts)
		ev := screen.PollEvent()

		switch tev := ev.(type) {
		case *uiEvent:
			if tev.kind == "quit" {
				return nil, ctx.Err()
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			selection, err := handleKey(ctx, screen, state, opts, tev)
			if err != nil {
				if errors.Is(err, errQuit) {
					return nil, nil
				}
				return nil, err
			}
			if selection != nil {
				return selection, nil
			}
		}
	}
}

func handleKey(
	ctx context.Context,
	screen tcell.Screen,
	state *uiState,
	opts Options,
	ev *tcell.EventKey,
) (*Selection, error) {
	if state.inputMode != "" {
		handleInputKey(state, ev)
		return nil, nil
	}

	switch ev.Key() {
	case tcell.KeyCtrlR:
		refreshState(ctx, state, opts)
		return nil, nil
	case tcell.KeyCtrlC, tcell.KeyESC:
		return nil, errQuit
	case tcell.KeyTab, tcell.KeyRight:
		focusNext(state)
		return nil, nil
	case tcell.KeyLeft:
		focusPrev(state)
		return nil, nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return nil, errQuit
		case 'r', 'R':
			refreshState(ctx, state, opts)
			return nil, nil
		case '/':
			state.inputMode = state.focus
			switch state.focus {
			case focusWorkspaces:
				state.inputBuffer = state.workspaceFilter
			case focusSessions:
				state.inputBuffer = state.sessionFilter
			case focusDetails:
				state.detailsSearchBuf = state.detailsSearch
			}
			return nil, nil
		case 'h', 'H':
			focusPrev(state)
			return nil, nil
		case 'l', 'L':
			focusNext(state)
			return nil, nil
		case 'n', 'N':
			if state.focus == focusDetails && len(state.detailsMatches) > 0 {
				lay := computeLayout(screen)
				if ev.Rune() == 'n' {
					state.detailsMatchIdx = (state.detailsMatchIdx + 1) % len(state.detailsMatches)
				} else {
					state.detailsMatchIdx = (state.detailsMatchIdx - 1 + len(state.detailsMatches)) % len(state.detailsMatches)
				}
				state.detailsState.scroll = scrollToMatch(state.detailsMatches[state.detailsMatchIdx], max(0, lay.details.h-2))
				return nil, nil
			}
		}
	}

	lay := computeLayout(screen)
	listFocus := state.focus
	if lay.mode == "1col" && state.focus == focusDetails {
		listFocus = state.lastListFocus
	}

	groups := filterGroups(buildGroups(state.records), state.workspaceFilter)
	state.workspaceState.clamp(len(groups))
	group := selectedGroup(groups, state.workspaceState.selected)

	sessions := filterSessions(buildSessionItems(group, opts.Location), state.sessionFilter)
	state.sessionState.clamp(len(sessions))
	selected := selectedRecord(sessions, state.sessionState.selected)

	if isEnter(ev) && selected != nil && state.focus != focusWorkspaces {
		return &Selection{Record: *selected}, nil
	}
	if isEnter(ev) && state.focus == focusWorkspaces {
		focusNext(state)
		return nil, nil
	}

	if state.focus == focusDetails {
		lines := wrapLines(detailLines(state, group, selected, opts), max(0, lay.details.w-2))
		applyDetailsNavigation(&state.detailsState, len(lines), max(0, lay.details.h-2), ev)
		return nil, nil
	}

	switch listFocus {
	case focusWorkspaces:
		prev := state.workspaceState.selected
		applyListNavigation(&state.workspaceState, len(groups), lay.workspaces.h-2, ev)
		if state.workspaceState.selected != prev {
			state.sessionState = listState{}
			state.detailsState = detailsState{}
		}
	case focusSessions:
		prev := state.sessionState.selected
		applyListNavigation(&state.sessionState, len(sessions), lay.sessions.h-2, ev)
		if state.sessionState.selected != prev {
			state.detailsState = detailsState{}
		}
	}
	return nil, nil
}

func handleInputKey(state *uiState, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyESC:
		if state.inputMode == focusDetails {
			state.detailsSearchBuf = state.detailsSearch
		}
		state.inputMode = ""
		state.inputBuffer = ""
	case tcell.KeyEnter:
		switch state.inputMode {
		case focusWorkspaces:
			state.workspaceFilter = strings.TrimSpace(state.inputBuffer)
			state.workspaceState = listState{}
		case focusSessions:
			state.sessionFilter = strings.TrimSpace(state.inputBuffer)
			state.sessionState = listState{}
		case focusDetails:
			state.detailsSearch = strings.TrimSpace(state.detailsSearchBuf)
			state.detailsSearchBuf = state.detailsSearch
			state.detailsMatchIdx = 0
			state.detailsSearchKey = ""
		}
		state.inputMode = ""
		state.inputBuffer = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if state.inputMode == focusDetails {
			state.detailsSearchBuf = dropLastRune(state.detailsSearchBuf)
		} else {
			state.inputBuffer = dropLastRune(state.inputBuffer)
		}
	case tcell.KeyRune:
		ch := ev.Rune()
		if ch < 32 {
			return
		}
		if state.inputMode == focusDetails {
			state.detailsSearchBuf += string(ch)
		} else {
			state.inputBuffer += string(ch)
		}
	}
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func isEnter(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		return true
	case tcell.KeyRune:
		return ev.Rune() == '\n' || ev.Rune() == '\r'
	}
	return false
}

func focusNext(state *uiState) {
	switch state.focus {
	case focusWorkspaces:
		state.focus = focusSessions
		state.lastListFocus = focusSessions
	case focusSessions:
		state.focus = focusDetails
	default:
		state.focus = focusWorkspaces
		state.lastListFocus = focusWorkspaces
	}
}

func focusPrev(state *uiState) {
	if state.focus == focusDetails {
		state.focus = state.lastListFocus
		return
	}
	state.focus = focusWorkspaces
	state.lastListFocus = focusWorkspaces
}

func refreshState(ctx context.Context, state *uiState, opts Options) {
	records, err := opts.LoadRecords(ctx)
	if err != nil {
		state.loadError = err
		return
	}
	state.loadError = nil
	state.records = records
	state.workspaceState = listState{}
	state.sessionState = listState{}
	state.detailsState = detailsState{}
}

func computeLayout(screen tcell.Screen) layout {
	maxX, maxY := screen.Size()
	usableH := max(1, maxY-1)

	if maxX >= 120 && usableH >= 10 {
		leftW := min(36, max(24, maxX/5))
		midW := min(70, max(40, maxX*2/5))
		rightW := max(20, maxX-leftW-midW)
		return layout{
			workspaces: rect{y: 0, x: 0, h: usableH, w: leftW},
			sessions:   rect{y: 0, x: leftW, h: usableH, w: midW},
			details:    rect{y: 0, x: leftW + midW, h: usableH, w: rightW},
			mode:       "3col",
		}
	}

	if maxX >= 80 && usableH >= 10 {
		leftW := min(36, max(24, maxX/3))
		rightW := maxX - leftW
		listH := max(6, usableH*3/5)
		return layout{
			workspaces: rect{y: 0, x: 0, h: usableH, w: leftW},
			sessions:   rect{y: 0, x: leftW, h: listH, w: rightW},
			details:    rect{y: listH, x: leftW, h: max(3, usableH-listH), w: rightW},
			mode:       "2col",
		}
	}

	listH := max(1, usableH*3/5)
	if usableH > 1 {
		listH = clamp(listH, 1, usableH-1)
	}
	return layout{
		workspaces: rect{y: 0, x: 0, h: listH, w: maxX},
		sessions:   rect{y: 0, x: 0, h: listH, w: maxX},
		details:    rect{y: listH, x: 0, h: usableH - listH, w: maxX},
		mode:       "1col",
	}
}

func draw(screen tcell.Screen, state *uiState, opts Options) {
	screen.Clear()
	lay := computeLayout(screen)

	groups := filterGroups(buildGroups(state.records), state.workspaceFilter)
	state.workspaceState.clamp(len(groups))
	state.workspaceState.ensureVisible(lay.workspaces.h-2, len(groups))
	group := selectedGroup(groups, state.workspaceState.selected)

	sessions := filterSessions(buildSessionItems(group, opts.Location), state.sessionFilter)
	state.sessionState.clamp(len(sessions))
	state.sessionState.ensureVisible(lay.sessions.h-2, len(sessions))
	selected := selectedRecord(sessions, state.sessionState.selected)

	listFocus := state.focus
	if lay.mode == "1col" && state.focus == focusDetails {
		listFocus = state.lastListFocus
	}

	workspaceFilter := state.workspaceFilter
	sessionFilter := state.sessionFilter
	switch state.inputMode {
	case focusWorkspaces:
		workspaceFilter = state.inputBuffer
	case focusSessions:
		sessionFilter = state.inputBuffer
	}

	if lay.mode == "1col" {
		if listFocus == focusSessions {
			drawBox(screen, lay.sessions, "Sessions", state.focus != focusDetails, sessionFilter)
			drawList(screen, lay.sessions, renderSessionRows(sessions, true, state.sessionState, lay.sessions.h-2))
		} else {
			drawBox(screen, lay.workspaces, "Workspaces", state.focus != focusDetails, workspaceFilter)
			drawList(screen, lay.workspaces, renderGroupRows(groups, true, state.workspaceState, lay.workspaces.h-2))
		}
	} else {
		drawBox(screen, lay.workspaces, "Workspaces", state.focus == focusWorkspaces, workspaceFilter)
		drawList(screen, lay.workspaces, renderGroupRows(groups, state.focus == focusWorkspaces, state.workspaceState, lay.workspaces.h-2))
		drawBox(screen, lay.sessions, "Sessions", state.focus == focusSessions, sessionFilter)
		drawList(screen, lay.sessions, renderSessionRows(sessions, state.focus == focusSessions, state.sessionState, lay.sessions.h-2))
	}

	detailsFilter := state.detailsSearch
	if state.inputMode == focusDetails {
		detailsFilter = state.detailsSearchBuf
	}
	drawBox(screen, lay.details, "Details", state.focus == focusDetails, detailsFilter)
	lines := wrapLines(detailLines(state, group, selected, opts), max(0, lay.details.w-2))
	viewH := max(0, lay.details.h-2)
	state.detailsState.scroll = clamp(state.detailsState.scroll, 0, max(0, len(lines)-viewH))
	updateDetailsMatches(state, lines, recordKey(selected), lay.details.w, viewH)

	lineStyles := map[int]tcell.Style{}
	if len(state.detailsMatches) > 0 {
		lineStyles[state.detailsMatches[state.detailsMatchIdx]] = tcell.StyleDefault.Reverse(true)
	}
	drawLines(screen, lay.details, lines, state.detailsState.scroll, lineStyles)

	drawStatus(screen, statusText(state, len(state.records)), versionLabel(opts.Version))
	screen.Show()
}

func updateDetailsMatches(state *uiState, lines []string, key string, width, viewH int) {
	searchKey := fmt.Sprintf("%s|%d|%s", key, width, state.detailsSearch)
	if searchKey == state.detailsSearchKey {
		return
	}
	state.detailsSearchKey = searchKey
	state.detailsMatches = findMatches(lines, state.detailsSearch)
	state.detailsMatchIdx = 0
	if len(state.detailsMatches) > 0 {
		state.detailsState.scroll = scrollToMatch(state.detailsMatches[0], viewH)
	}
}

func statusText(state *uiState, total int) string {
	if state.loadError != nil {
		return fmt.Sprintf("Load error: %v", state.loadError)
	}
	if state.inputMode != "" {
		return "Type to filter. Enter: apply  Esc: cancel"
	}
	if state.focus == focusDetails {
		status := "Up/Down PgUp/PgDn: scroll  /: search  Enter: select  Tab/Left/Right: switch  q: quit"
		if len(state.detailsMatches) > 0 {
			status += "  n/N: next/prev"
		}
		return status
	}
	return fmt.Sprintf("%d sessions  Tab/Left/Right: switch  /: filter  Enter: select  r: refresh  q: quit", total)
}

func buildGroups(records []sessionhistory.Record) []workspaceGroup {
	byName := map[string][]sessionhistory.Record{}
	var names []string
	for _, rec := range records {
		name := rec.WorkspaceName
		if name == "" {
			name = sessionhistory.Unknown
		}
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], rec)
	}
	// Most recently active workspace first.
	sort.SliceStable(names, func(i, j int) bool {
		return newest(byName[names[i]]) > newest(byName[names[j]])
	})

	groups := make([]workspaceGroup, 0, len(names)+1)
	groups = append(groups, workspaceGroup{
		label:   fmt.Sprintf("All sessions  (%d)", len(records)),
		records: records,
		all:     true,
	})
	for _, name := range names {
		groups = append(groups, workspaceGroup{
			label:   fmt.Sprintf("%s  (%d)", name, len(byName[name])),
			name:    name,
			records: byName[name],
		})
	}
	return groups
}

func newest(records []sessionhistory.Record) float64 {
	var ts float64
	for _, r := range records {
		ts = max(ts, r.Timestamp)
	}
	return ts
}

func buildSessionItems(group workspaceGroup, loc *time.Location) []sessionItem {
	if loc == nil {
		loc = time.Local
	}
	items := make([]sessionItem, 0, len(group.records))
	for _, rec := range group.records {
		label := rec.Time().In(loc).Format("2006-01-02 15:04") + "  " + rec.Title
		if group.all {
			label += "  [" + rec.WorkspaceName + "]"
		}
		items = append(items, sessionItem{label: label, record: rec})
	}
	return items
}

func selectedGroup(groups []workspaceGroup, idx int) workspaceGroup {
	if idx < 0 || idx >= len(groups) {
		return workspaceGroup{}
	}
	return groups[idx]
}

func selectedRecord(items []sessionItem, idx int) *sessionhistory.Record {
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return &items[idx].record
}

func recordKey(rec *sessionhistory.Record) string {
	if rec == nil {
		return ""
	}
	return rec.Provider + "|" + rec.WorkspacePath + "|" + rec.Title + "|" + strconv.FormatFloat(rec.Timestamp, 'f', -1, 64)
}

// The "All sessions" group stays visible under any workspace filter.
func filterGroups(groups []workspaceGroup, needle string) []workspaceGroup {
	n := strings.ToLower(strings.TrimSpace(needle))
	if n == "" {
		return groups
	}
	out := make([]workspaceGroup, 0, len(groups))
	for _, g := range groups {
		if g.all || strings.Contains(strings.ToLower(g.name), n) {
			out = append(out, g)
		}
	}
	return out
}

func filterSessions(items []sessionItem, needle string) []sessionItem {
	if strings.TrimSpace(needle) == "" {
		return items
	}
	out := make([]sessionItem, 0, len(items))
	for _, it := range items {
		if it.record.Matches(needle) {
			out = append(out, it)
		}
	}
	return out
}

func detailLines(state *uiState, group workspaceGroup, rec *sessionhistory.Record, opts Options) []string {
	if state.loadError != nil {
		return []string{fmt.Sprintf("Load error: %v", state.loadError)}
	}
	if len(state.records) == 0 {
		return []string{"No sessions found.", "Check `agent-history agents` for the storage locations that were searched."}
	}
	if rec == nil {
		if group.name != "" {
			return []string{"Workspace:", "  " + group.name, "", "Select a session to see its details."}
		}
		return []string{"Select a session to see its details."}
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	lines := []string{
		"Session:",
		"  " + rec.Title,
		"",
		"Workspace: " + rec.WorkspaceName,
		"Path: " + rec.WorkspacePath,
		"Provider: " + rec.Provider,
		"Modified: " + rec.Time().In(loc).Format(time.RFC3339),
		fmt.Sprintf("Messages: %d", rec.MessageCount),
		fmt.Sprintf("Lines: +%d -%d", rec.Stats.LinesAdded, rec.Stats.LinesRemoved),
		fmt.Sprintf("Files changed: %d", rec.Stats.FilesChanged),
	}
	if len(rec.FileTypes) > 0 {
		var parts []string
		for _, c := range rec.FileTypes.Top(-1) {
			parts = append(parts, fmt.Sprintf(".%s %d", c.Ext, c.Count))
		}
		lines = append(lines, "File types: "+strings.Join(parts, ", "))
	}
	if rec.Archived {
		lines = append(lines, "Archived: yes")
	}
	if rec.Subtitle != "" {
		lines = append(lines, "", "Files:", rec.Subtitle)
	}
	return lines
}

type row struct {
	label    string
	selected bool
	focused  bool
}

func renderGroupRows(groups []workspaceGroup, focused bool, state listState, viewH int) []row {
	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.label)
	}
	return renderRows(labels, focused, state, viewH)
}

func renderSessionRows(items []sessionItem, focused bool, state listState, viewH int) []row {
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.label)
	}
	return renderRows(labels, focused, state, viewH)
}

func renderRows(labels []string, focused bool, state listState, viewH int) []row {
	start := clamp(state.scroll, 0, max(0, len(labels)))
	end := min(len(labels), start+max(0, viewH))
	rows := make([]row, 0, max(0, end-start))
	for i := start; i < end; i++ {
		rows = append(rows, row{label: labels[i]})
	}
	if sel := state.selected - start; sel >= 0 && sel < len(rows) {
		rows[sel].selected = true
		rows[sel].focused = focused
	}
	return rows
}

func findMatches(lines []string, needle string) []int {
	n := strings.ToLower(strings.TrimSpace(needle))
	if n == "" {
		return nil
	}
	var out []int
	for i, ln := range lines {
		if strings.Contains(strings.ToLower(ln), n) {
			out = append(out, i)
		}
	}
	return out
}

func scrollToMatch(line int, viewH int) int {
	return max(0, line-max(1, viewH)/2)
}

func applyListNavigation(state *listState, nItems int, viewH int, ev *tcell.EventKey) {
	if nItems <= 0 {
		*state = listState{}
		return
	}
	switch ev.Key() {
	case tcell.KeyUp:
		state.selected--
	case tcell.KeyDown:
		state.selected++
	case tcell.KeyPgUp:
		state.selected -= max(1, viewH)
	case tcell.KeyPgDn:
		state.selected += max(1, viewH)
	case tcell.KeyHome:
		state.selected = 0
	case tcell.KeyEnd:
		state.selected = nItems - 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'K':
			state.selected--
		case 'j', 'J':
			state.selected++
		case 'g':
			state.selected = 0
		case 'G':
			state.selected = nItems - 1
		default:
			return
		}
	default:
		return
	}
	state.selected = clamp(state.selected, 0, nItems-1)
	state.ensureVisible(viewH, nItems)
}

func applyDetailsNavigation(state *detailsState, nLines int, viewH int, ev *tcell.EventKey) {
	if nLines <= 0 || viewH <= 0 {
		state.scroll = 0
		return
	}
	maxScroll := max(0, nLines-viewH)
	switch ev.Key() {
	case tcell.KeyUp:
		state.scroll--
	case tcell.KeyDown:
		state.scroll++
	case tcell.KeyPgUp:
		state.scroll -= max(1, viewH)
	case tcell.KeyPgDn:
		state.scroll += max(1, viewH)
	case tcell.KeyHome:
		state.scroll = 0
	case tcell.KeyEnd:
		state.scroll = maxScroll
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'K':
			state.scroll--
		case 'j', 'J':
			state.scroll++
		case 'g':
			state.scroll = 0
		case 'G':
			state.scroll = maxScroll
		}
	}
	state.scroll = clamp(state.scroll, 0, maxScroll)
}

func (s *listState) clamp(nItems int) {
	if nItems <= 0 {
		*s = listState{}
		return
	}
	s.selected = clamp(s.selected, 0, nItems-1)
	s.scroll = clamp(s.scroll, 0, nItems-1)
}

func (s *listState) ensureVisible(viewH int, nItems int) {
	if nItems <= 0 || viewH <= 0 {
		s.scroll = 0
		return
	}
	if s.selected < s.scroll {
		s.scroll = s.selected
	} else if s.selected >= s.scroll+viewH {
		s.scroll = s.selected - viewH + 1
	}
	s.scroll = clamp(s.scroll, 0, max(0, nItems-viewH))
}

func drawBox(screen tcell.Screen, r rect, title string, focused bool, filter string) {
	if r.w <= 0 || r.h <= 0 {
		return
	}
	border := tcell.StyleDefault.Dim(true)
	if focused {
		border = tcell.StyleDefault.Bold(true)
	}
	for x := r.x + 1; x < r.x+r.w-1; x++ {
		screen.SetContent(x, r.y, tcell.RuneHLine, nil, border)
		screen.SetContent(x, r.y+r.h-1, tcell.RuneHLine, nil, border)
	}
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		screen.SetContent(r.x, y, tcell.RuneVLine, nil, border)
		screen.SetContent(r.x+r.w-1, y, tcell.RuneVLine, nil, border)
	}
	screen.SetContent(r.x, r.y, tcell.RuneULCorner, nil, border)
	screen.SetContent(r.x+r.w-1, r.y, tcell.RuneURCorner, nil, border)
	screen.SetContent(r.x, r.y+r.h-1, tcell.RuneLLCorner, nil, border)
	screen.SetContent(r.x+r.w-1, r.y+r.h-1, tcell.RuneLRCorner, nil, border)

	titleStyle := tcell.StyleDefault.Reverse(true)
	if focused {
		titleStyle = titleStyle.Bold(true)
		title = "> " + title + " <"
	} else {
		title = " " + title + " "
	}
	inner := max(0, r.w-2)
	title = truncate(title, inner)
	writeText(screen, r.x+1+max(0, (inner-displayWidth(title))/2), r.y, title, titleStyle)

	if filter != "" && r.h >= 2 {
		writeText(screen, r.x+1, r.y+r.h-1, truncate("/"+filter, inner), border.Dim(true))
	}
}

func drawList(screen tcell.Screen, r rect, rows []row) {
	if r.h < 3 || r.w < 4 {
		return
	}
	innerW := r.w - 2
	for i := 0; i < r.h-2; i++ {
		y := r.y + 1 + i
		if i >= len(rows) {
			writeText(screen, r.x+1, y, padRight("", innerW), tcell.StyleDefault)
			continue
		}
		style := tcell.StyleDefault
		if rows[i].selected {
			style = style.Reverse(true)
			if rows[i].focused {
				style = style.Bold(true)
			} else {
				style = style.Dim(true)
			}
		}
		writeText(screen, r.x+1, y, padRight(truncate(rows[i].label, innerW), innerW), style)
	}
}

func drawLines(screen tcell.Screen, r rect, lines []string, scroll int, styles map[int]tcell.Style) {
	if r.h < 3 || r.w < 4 {
		return
	}
	innerH := r.h - 2
	innerW := r.w - 2
	scroll = clamp(scroll, 0, max(0, len(lines)-innerH))
	for i := 0; i < innerH; i++ {
		idx := scroll + i
		line := ""
		if idx < len(lines) {
			line = truncate(lines[idx], innerW)
		}
		style := tcell.StyleDefault
		if s, ok := styles[idx]; ok {
			style = s
		}
		writeText(screen, r.x+1, r.y+1+i, padRight(line, innerW), style)
	}
}

func drawStatus(screen tcell.Screen, left string, right string) {
	w, h := screen.Size()
	if h <= 0 {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	writeText(screen, 0, h-1, padRight(truncate(left, w), w), style)
	if right == "" {
		return
	}
	right = truncate(right, w)
	writeText(screen, max(0, w-displayWidth(right)), h-1, right, style)
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
}

func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		out = append(out, wrapText(ln, width)...)
	}
	return out
}

func wrapText(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		var buf strings.Builder
		cur := 0
		for _, ch := range ln {
			w := runewidth.RuneWidth(ch)
			if cur > 0 && cur+w > width {
				out = append(out, buf.String())
				buf.Reset()
				cur = 0
			}
			buf.WriteRune(ch)
			cur += w
		}
		out = append(out, buf.String())
	}
	return out
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func versionLabel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "dev") {
		return "dev"
	}
	if strings.HasPrefix(strings.ToLower(v), "v") {
		return v
	}
	return "v" + v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
