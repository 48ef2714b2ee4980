package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
	"github.com/wenci-bit/LifePRG-sub002/internal/ui"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	userID string

	width  int
	height int

	state *engine.ProgressState

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state *engine.ProgressState
	err   error
}

type checkedInMsg struct {
	res *engine.SubmitResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userID string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		userID:  userID,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Progress(m.ctx, m.userID)
		return loadedMsg{state: st, err: err}
	}
}

func (m boardModel) checkinCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.SubmitActivity(m.ctx, m.userID, engine.CheckIn{At: time.Now()})
		return checkedInMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.state = msg.state
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case checkedInMsg:
		if msg.err != nil {
			m.lastLog = "Check-in: " + msg.err.Error()
			return m, nil
		}
		log := fmt.Sprintf("Checked in: +%d exp, +%d coins", msg.res.Bundle.Exp, msg.res.Bundle.Currency)
		if msg.res.Bundle.BonusMessage != "" {
			log += " — " + msg.res.Bundle.BonusMessage
		}
		if msg.res.LeveledUp {
			log += fmt.Sprintf(" — %s (level %d)", ui.BadgeLevelUp, msg.res.NewLevel)
		}
		m.lastLog = log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "c", " ":
			m.lastLog = "Checking in…"
			return m, m.checkinCmd()
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading || m.state == nil {
		return "LifeRPG — loading…\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	st := m.state
	title := engine.LevelTitle(m.svc.Catalog(), st.Level)
	return fmt.Sprintf("LifeRPG | Level %d (%s) | %s | %s %d",
		st.Level, title, ui.ExpBar(st.CurrentExp, st.MaxExp, 24), ui.IconCoin, st.Currency)
}

func (m boardModel) renderSidebar() string {
	st := m.state
	lines := []string{"Attributes"}
	for _, k := range engine.AttributeKeys() {
		lines = append(lines, fmt.Sprintf("- %s: %3d (wallet %d)", strings.ToUpper(string(k)), st.Attributes[k], st.Wallet[k]))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- c/space: check in")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	st := m.state
	var out []string

	out = append(out, "Streaks")
	if len(st.Streaks) == 0 {
		out = append(out, "(none yet — press c to check in)")
	}
	domains := make([]string, 0, len(st.Streaks))
	for d := range st.Streaks {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	for _, d := range domains {
		sc := st.Streaks[d]
		out = append(out, fmt.Sprintf("- %s: %d day(s), best %d, next milestone day %d",
			d, sc.CurrentStreak, sc.LongestStreak, engine.NextMilestone(sc.CurrentStreak)))
	}

	out = append(out, "")
	out = append(out, "Stats")
	out = append(out, fmt.Sprintf("- quests done: %d", st.Stats.TotalQuestsCompleted))
	out = append(out, fmt.Sprintf("- focus time: %d min", st.Stats.TotalFocusTime))

	out = append(out, "")
	out = append(out, "Unlocked")
	ids := st.UnlockedIDs()
	sort.Strings(ids)
	if len(ids) == 0 {
		out = append(out, "(nothing yet)")
	}
	for _, id := range ids {
		out = append(out, "- "+id)
	}
	return strings.Join(out, "\n")
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}
