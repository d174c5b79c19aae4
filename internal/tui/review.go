// internal/tui/review.go
//
// Interactive review mode. It uses bubbletea, which follows The Elm
// Architecture: a model holds the state, Update reacts to messages, View
// renders the state to a string.
//
// The model shows every pending document change collected by the runner,
// renders the diff for the selected one, and applies or skips changes one
// decision at a time.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/packdocs/internal/diff"
	"github.com/kingrea/packdocs/internal/logbook"
	"github.com/kingrea/packdocs/internal/runner"
)

// decision tracks what the reviewer chose for one pending change.
type decision int

const (
	undecided decision = iota
	applied
	skipped
	failed
)

// Outcome summarizes a finished review session.
type Outcome struct {
	Applied int
	Skipped int
	Failed  int
}

// Applier persists a single reviewed change.
type Applier func(runner.Pending) error

// reviewItem implements list.Item for the pending-change picker.
type reviewItem struct {
	pending  runner.Pending
	decision decision
}

func (i reviewItem) Title() string {
	label := fmt.Sprintf("%s · %s", i.pending.Dir, i.pending.StageID)
	switch i.decision {
	case applied:
		return "✓ " + label
	case skipped:
		return "- " + label
	case failed:
		return "✗ " + label
	}
	return label
}

func (i reviewItem) Description() string {
	return fmt.Sprintf("%s · %s", i.pending.Result.Status, i.pending.Result.Record.Label)
}

func (i reviewItem) FilterValue() string { return i.pending.Dir }

// Review is the bubbletea model for the review session.
type Review struct {
	items   []reviewItem
	apply   Applier
	picker  list.Model
	logbook *logbook.Logbook
	color   bool
	width   int
	height  int
	scroll  int
	status  string
	err     error
	outcome Outcome
}

// NewReview builds the review model over the collected pending changes. The
// logbook feeds the footer's journal line and may be nil.
func NewReview(pending []runner.Pending, apply Applier, lb *logbook.Logbook, color bool) *Review {
	items := make([]reviewItem, len(pending))
	listItems := make([]list.Item, len(pending))
	for i, p := range pending {
		items[i] = reviewItem{pending: p}
		listItems[i] = items[i]
	}
	picker := list.New(listItems, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Pending changes"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)
	return &Review{
		items:   items,
		apply:   apply,
		picker:  picker,
		logbook: lb,
		color:   color,
	}
}

// Init is called once when the program starts.
func (r *Review) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (r *Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.picker.SetSize(max(0, msg.Width-4), listHeight(msg.Height))
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return r, tea.Quit
		case "a", "enter":
			r.decide(applied)
			if r.done() {
				return r, tea.Quit
			}
			return r, nil
		case "s":
			r.decide(skipped)
			if r.done() {
				return r, tea.Quit
			}
			return r, nil
		case "pgdown", "J":
			r.scroll += diffPageStep
			return r, nil
		case "pgup", "K":
			r.scroll = max(0, r.scroll-diffPageStep)
			return r, nil
		}
	}

	var cmd tea.Cmd
	prev := r.picker.Index()
	r.picker, cmd = r.picker.Update(msg)
	if r.picker.Index() != prev {
		r.scroll = 0
	}
	return r, cmd
}

const diffPageStep = 10

// decide records the choice for the selected item and advances the cursor.
func (r *Review) decide(d decision) {
	idx := r.picker.Index()
	if idx < 0 || idx >= len(r.items) {
		return
	}
	item := &r.items[idx]
	if item.decision != undecided {
		return
	}
	if d == applied {
		if err := r.apply(item.pending); err != nil {
			r.err = err
			item.decision = failed
			r.outcome.Failed++
			r.status = fmt.Sprintf("apply failed: %v", err)
		} else {
			item.decision = applied
			r.outcome.Applied++
			r.status = fmt.Sprintf("applied %s", item.pending.Result.Record.Label)
		}
	} else {
		item.decision = skipped
		r.outcome.Skipped++
		r.status = fmt.Sprintf("skipped %s", item.pending.Result.Record.Label)
	}
	r.picker.SetItem(idx, *item)
	if next := r.nextUndecided(idx); next >= 0 {
		r.picker.Select(next)
		r.scroll = 0
	}
}

func (r *Review) nextUndecided(from int) int {
	for i := 1; i <= len(r.items); i++ {
		idx := (from + i) % len(r.items)
		if r.items[idx].decision == undecided {
			return idx
		}
	}
	return -1
}

func (r *Review) done() bool {
	for _, item := range r.items {
		if item.decision == undecided {
			return false
		}
	}
	return true
}

// Outcome reports the tallies once the program has finished.
func (r *Review) Outcome() Outcome {
	return r.outcome
}

// View renders the current state to a string.
func (r *Review) View() string {
	if len(r.items) == 0 {
		return "Nothing to review.\n"
	}

	var b strings.Builder
	b.WriteString(r.picker.View())
	b.WriteString("\n")
	b.WriteString(r.diffPane())
	b.WriteString("\n")

	if journal := r.journalLine(); journal != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(journal))
		b.WriteString("\n")
	}
	footer := "a apply · s skip · ↑/↓ select · J/K scroll diff · q quit"
	if r.status != "" {
		footer = r.status + "  ·  " + footer
	}
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(footer))
	b.WriteString("\n")
	return b.String()
}

// journalLine surfaces the newest logbook entry, so applies and failures show
// up in the footer as they are journaled.
func (r *Review) journalLine() string {
	if r.logbook == nil {
		return ""
	}
	lines, _ := r.logbook.Tail(1)
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

// diffPane renders the selected change's diff, windowed by the scroll offset.
func (r *Review) diffPane() string {
	idx := r.picker.Index()
	if idx < 0 || idx >= len(r.items) {
		return ""
	}
	rendered := diff.Render(r.items[idx].pending.Result.Record.Diff, diff.RenderOptions{Color: r.color})
	lines := strings.Split(rendered, "\n")
	visible := diffHeight(r.height)
	start := min(r.scroll, max(0, len(lines)-1))
	end := min(len(lines), start+visible)
	pane := strings.Join(lines[start:end], "\n")
	if end < len(lines) {
		pane += fmt.Sprintf("\n… %d more lines", len(lines)-end)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(20, r.width-4)).
		Render(pane)
}

func listHeight(total int) int {
	return max(4, total/3)
}

func diffHeight(total int) int {
	return max(5, total-listHeight(total)-6)
}

// Run executes the review session and returns the tallies.
func Run(pending []runner.Pending, apply Applier, lb *logbook.Logbook, color bool) (Outcome, error) {
	if len(pending) == 0 {
		return Outcome{}, nil
	}
	model := NewReview(pending, apply, lb, color)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("tui: review session: %w", err)
	}
	if m, ok := final.(*Review); ok {
		return m.Outcome(), nil
	}
	return model.Outcome(), nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
