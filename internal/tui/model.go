// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/taipu/internal/keyboard"
	"github.com/verte-zerg/taipu/internal/match"
	"github.com/verte-zerg/taipu/internal/model"
	"github.com/verte-zerg/taipu/internal/round"
	"github.com/verte-zerg/taipu/internal/stats"
)

// Terminals report no key-up, so the overlay releases a key after this delay.
const keyReleaseDelay = 150 * time.Millisecond

type preparedMsg struct {
	level   string
	phrases []model.Phrase
	err     error
}

type keyReleaseMsg struct {
	name string
	gen  uint64
}

type keyMap struct {
	Start     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Level     key.Binding
	Abort     key.Binding
	Retry     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "easier")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "harder")),
		Level:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "level")),
		Abort:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "end round")),
		Retry:     key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "retry")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// screenKeys adapts the bindings of one screen to help.KeyMap.
type screenKeys []key.Binding

func (k screenKeys) ShortHelp() []key.Binding  { return k }
func (k screenKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

// Model implements the Bubble Tea game UI on top of a round controller.
type Model struct {
	ctx          context.Context
	ctrl         *round.Controller
	levels       []string
	level        int
	showKeyboard bool
	overlay      *keyboard.Overlay
	keys         keyMap
	help         help.Model

	width  int
	height int

	loading   bool
	loadErr   string
	countdown int
	marks     []match.Mark
	score     int
	elapsed   time.Duration
	result    model.RoundResult
	tick      round.TickScheduled
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	doneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FBF7F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	countdownStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Padding(1, 4).Border(lipgloss.RoundedBorder())
	keyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	pressedKeyStyle  = keyStyle.Copy().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#C89A3A"))
)

// NewModel constructs the game model. The level list and default selection
// come from cfg.
func NewModel(ctx context.Context, ctrl *round.Controller, cfg model.Config) *Model {
	levels := cfg.Levels
	if len(levels) == 0 {
		levels = []string{model.DefaultLevel}
	}
	m := &Model{
		ctx:          ctx,
		ctrl:         ctrl,
		levels:       levels,
		showKeyboard: cfg.Keyboard,
		overlay:      keyboard.NewOverlay(),
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	if !m.selectByName(cfg.Level) {
		m.selectByName(model.DefaultLevel)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Level returns the selected difficulty level.
func (m *Model) Level() string {
	return m.levels[m.level]
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.FocusMsg:
		m.ctrl.Input(match.Event{Kind: match.Focus})
		return m, nil
	case tea.BlurMsg:
		m.ctrl.Input(match.Event{Kind: match.Blur})
		m.overlay.Reset()
		return m, nil
	case preparedMsg:
		return m, m.handlePrepared(msg)
	case round.TickMsg:
		return m, m.apply(m.ctrl.Tick(msg))
	case keyReleaseMsg:
		m.overlay.Release(msg.name, msg.gen)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m, tea.Batch(m.pressKey(msg), m.handleKey(msg))
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.ctrl.Screen() {
	case model.ScreenStart:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Start):
			return m.start()
		case key.Matches(msg, m.keys.Prev):
			m.selectLevel(m.level - 1)
		case key.Matches(msg, m.keys.Next):
			m.selectLevel(m.level + 1)
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			m.selectByName(string(msg.Runes))
		}
	case model.ScreenCountdown:
		if key.Matches(msg, m.keys.Abort) {
			return m.apply(m.ctrl.Abort())
		}
	case model.ScreenTyping:
		var effects []round.Effect
		for _, ev := range inputEvents(msg) {
			effects = append(effects, m.ctrl.Input(ev)...)
		}
		return m.apply(effects)
	case model.ScreenResult:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Retry):
			return m.apply(m.ctrl.Retry())
		}
	}
	return nil
}

// inputEvents translates a terminal key into match events. Printable ASCII is
// typed directly; anything else arriving as runes was committed by an input
// method and is treated as one composition.
func inputEvents(msg tea.KeyMsg) []match.Event {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		return []match.Event{match.Key(match.KeyBackspace)}
	case tea.KeyEsc:
		return []match.Event{match.Key(match.KeyEscape)}
	case tea.KeySpace:
		return []match.Event{match.Key(" ")}
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) == 0 {
			return nil
		}
		if !isASCII(msg.Runes) {
			return match.Compose(string(msg.Runes))
		}
		events := make([]match.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, match.Key(string(r)))
		}
		return events
	default:
		return nil
	}
}

func isASCII(runes []rune) bool {
	for _, r := range runes {
		if r >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (m *Model) start() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.loadErr = ""
	ctx, ctrl, level := m.ctx, m.ctrl, m.Level()
	return func() tea.Msg {
		phrases, err := ctrl.Prepare(ctx, level)
		return preparedMsg{level: level, phrases: phrases, err: err}
	}
}

func (m *Model) handlePrepared(msg preparedMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		log.Printf("round not started: %v", msg.err)
		m.loadErr = msg.err.Error()
		return nil
	}
	effects, err := m.ctrl.Begin(msg.level, msg.phrases)
	if err != nil {
		log.Printf("round not started: %v", err)
		m.loadErr = err.Error()
		return nil
	}
	return m.apply(effects)
}

// apply mirrors controller effects into display state and schedules ticks.
func (m *Model) apply(effects []round.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case round.ScreenChanged:
			if e.Screen == model.ScreenStart {
				m.marks = nil
				m.overlay.Reset()
			}
		case round.CountdownChanged:
			m.countdown = e.Count
		case round.PhraseRendered:
			m.marks = e.Marks
		case round.ScoreChanged:
			m.score = e.Score
		case round.ElapsedChanged:
			m.elapsed = e.Elapsed
		case round.TickScheduled:
			m.tick = e
			cmds = append(cmds, scheduleTick(e))
		case round.Finished:
			m.result = e.Result
			m.marks = nil
		}
	}
	return tea.Batch(cmds...)
}

func scheduleTick(t round.TickScheduled) tea.Cmd {
	return tea.Tick(t.Interval, func(at time.Time) tea.Msg {
		return round.TickMsg{Kind: t.Kind, Gen: t.Gen, At: at}
	})
}

func (m *Model) pressKey(msg tea.KeyMsg) tea.Cmd {
	if !m.showKeyboard {
		return nil
	}
	var raw string
	switch msg.Type {
	case tea.KeySpace:
		raw = " "
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return nil
		}
		raw = string(msg.Runes)
	default:
		return nil
	}
	name, gen, ok := m.overlay.Press(raw)
	if !ok {
		return nil
	}
	return tea.Tick(keyReleaseDelay, func(time.Time) tea.Msg {
		return keyReleaseMsg{name: name, gen: gen}
	})
}

func (m *Model) selectLevel(idx int) {
	n := len(m.levels)
	m.level = ((idx % n) + n) % n
}

func (m *Model) selectByName(name string) bool {
	for i, l := range m.levels {
		if l == name {
			m.level = i
			return true
		}
	}
	return false
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.ctrl.Screen() {
	case model.ScreenStart:
		body = m.viewStart()
	case model.ScreenCountdown:
		body = countdownStyle.Render(strconv.Itoa(m.countdown))
	case model.ScreenTyping:
		body = m.viewTyping()
	case model.ScreenResult:
		body = m.viewResult()
	}
	footer := m.help.View(m.helpKeys())
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	content := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

func (m *Model) helpKeys() screenKeys {
	switch m.ctrl.Screen() {
	case model.ScreenStart:
		return screenKeys{m.keys.Start, m.keys.Prev, m.keys.Next, m.keys.Level, m.keys.Quit}
	case model.ScreenCountdown, model.ScreenTyping:
		return screenKeys{m.keys.Abort, m.keys.ForceQuit}
	default:
		return screenKeys{m.keys.Retry, m.keys.Quit}
	}
}

func (m *Model) viewStart() string {
	lines := []string{titleStyle.Render("taipu"), ""}

	choices := make([]string, 0, len(m.levels))
	for i, l := range m.levels {
		if i == m.level {
			choices = append(choices, selectedStyle.Render("(•) "+l))
			continue
		}
		choices = append(choices, labelStyle.Render("( ) "+l))
	}
	lines = append(lines, labelStyle.Render("Difficulty")+"  "+strings.Join(choices, "  "), "")

	switch {
	case m.loading:
		lines = append(lines, labelStyle.Render(fmt.Sprintf("Loading level %s...", m.Level())))
	case m.loadErr != "":
		lines = append(lines, errorStyle.Render("Could not load questions: "+m.loadErr))
	default:
		lines = append(lines, valueStyle.Render("Press space to start"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewTyping() string {
	status := strings.Join([]string{
		labelStyle.Render("Score ") + valueStyle.Render(stats.FormatScore(m.score)),
		labelStyle.Render("Time ") + valueStyle.Render(stats.FormatElapsed(m.elapsed)) +
			labelStyle.Render(" / "+stats.FormatElapsed(m.ctrl.TimeLimit())),
		labelStyle.Render(fmt.Sprintf("Left %d", m.ctrl.Remaining())),
	}, "   ")

	styled := buildStyledRunes(m.marks)
	phrase := renderStyledRunes(styled)
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 1 {
			contentWidth = 1
		}
		phrase = wrapStyledRunes(styled, contentWidth)
	}

	lines := []string{status, "", phrase}
	if m.showKeyboard {
		lines = append(lines, "", renderKeyboard(m.overlay))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewResult() string {
	lines := []string{
		titleStyle.Render(endReasonText(m.result.Reason)),
		"",
		valueStyle.Render("Score: " + stats.FormatScore(m.result.Score)),
		"",
	}
	for _, l := range stats.ResultLines(m.result) {
		lines = append(lines, labelStyle.Render(l))
	}
	return strings.Join(lines, "\n")
}

func endReasonText(r model.EndReason) string {
	switch r {
	case model.EndTimeout:
		return "Time's up"
	case model.EndExhausted:
		return "All questions cleared"
	default:
		return "Round ended"
	}
}

// Row indents that give the overlay a staggered keyboard shape.
var rowIndent = []int{0, 2, 3, 4, 12}

func renderKeyboard(o *keyboard.Overlay) string {
	rows := make([]string, 0, len(keyboard.Layout))
	for i, row := range keyboard.Layout {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			label := k
			if k == keyboard.Space {
				label = strings.Repeat(" ", 21)
			}
			style := keyStyle
			if o.Pressed(k) {
				style = pressedKeyStyle
			}
			cells = append(cells, style.Render(label))
		}
		indent := 0
		if i < len(rowIndent) {
			indent = rowIndent[i]
		}
		rows = append(rows, strings.Repeat(" ", indent)+strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}
