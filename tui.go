package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cue/clipboard"
	"cue/prompt"
)

// Engine snapshots forwarded into the TUI message loop.
type StepMsg prompt.StepView
type ScrollMsg prompt.ScrollView
type copyFadeMsg struct{}

type uiMode int

const (
	uiStep uiMode = iota
	uiScroll
)

var (
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	unitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	copiedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

type tuiModel struct {
	mode  uiMode
	sess  *prompt.Session
	text  string // flattened script, scroll mode only
	micOK bool

	step   prompt.StepView
	scroll prompt.ScrollView

	width, height int
	copied        bool
}

// NewTUIProgram builds the prompter display. Bubble Tea owns the
// terminal: alt screen and raw mode are acquired on start and restored
// on every exit path.
func NewTUIProgram(sess *prompt.Session, mode uiMode, text string, micOK bool) *tea.Program {
	m := tuiModel{mode: mode, sess: sess, text: text, micOK: micOK}
	return tea.NewProgram(m, tea.WithAltScreen())
}

// programSink forwards engine snapshots to the display goroutine.
type programSink struct{ p *tea.Program }

func (s programSink) Step(v prompt.StepView) { s.p.Send(StepMsg(v)) }

func (s programSink) Scroll(v prompt.ScrollView) { s.p.Send(ScrollMsg(v)) }

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StepMsg:
		m.step = prompt.StepView(msg)

	case ScrollMsg:
		m.scroll = prompt.ScrollView(msg)

	case copyFadeMsg:
		m.copied = false
	}
	return m, nil
}

// handleKey maps key presses onto commands. The mapping is policy
// agnostic: the engine decides what Next means under the active policy.
func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Push(prompt.Command{Kind: prompt.Quit})
	case " ", "enter":
		m.sess.Push(prompt.Command{Kind: prompt.Next})
	case "b":
		m.sess.Push(prompt.Command{Kind: prompt.Prev})
	case "v":
		m.sess.Push(prompt.Command{Kind: prompt.ToggleVoice})
	case "right":
		m.sess.Push(prompt.Command{Kind: prompt.Speed, Dir: 1})
	case "left":
		m.sess.Push(prompt.Command{Kind: prompt.Speed, Dir: -1})
	case "c":
		if text := m.currentText(); text != "" {
			if err := clipboard.Copy(text); err == nil {
				m.copied = true
				return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return copyFadeMsg{} })
			}
		}
	}
	return m, nil
}

func (m tuiModel) currentText() string {
	if m.mode == uiScroll {
		return m.text
	}
	return m.step.Unit
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.mode == uiScroll {
		return m.viewScroll()
	}
	return m.viewStep()
}

func (m tuiModel) viewStep() string {
	rule := ruleStyle.Render(strings.Repeat("─", m.width))
	count := m.step.Index + 1
	if count > m.step.Total {
		count = m.step.Total
	}
	progress := progressStyle.Render(center(fmt.Sprintf("[%d/%d]", count, m.step.Total), m.width))

	var body []string
	if m.step.Done {
		body = []string{
			doneStyle.Render(center("End of script", m.width)),
			"",
			helpStyle.Render(center("q to exit", m.width)),
		}
	} else {
		wrapWidth := m.width - 4
		if wrapWidth > 80 {
			wrapWidth = 80
		}
		for _, line := range wrapText(m.step.Unit, wrapWidth) {
			body = append(body, unitStyle.Render(center(line, m.width)))
		}
	}

	mic := m.micLine()
	help := helpStyle.Render(center("space/enter next · b back · c copy · v voice · q quit", m.width))

	// header 3 lines, footer 2 lines, body vertically centered between
	avail := m.height - 5
	topPad := (avail - len(body)) / 2
	if topPad < 0 {
		topPad = 0
	}
	botPad := avail - len(body) - topPad
	if botPad < 0 {
		botPad = 0
	}

	var b strings.Builder
	b.WriteString(rule + "\n" + progress + "\n" + rule + "\n")
	b.WriteString(strings.Repeat("\n", topPad))
	b.WriteString(strings.Join(body, "\n") + "\n")
	b.WriteString(strings.Repeat("\n", botPad))
	b.WriteString(mic + "\n")
	b.WriteString(help)
	return b.String()
}

func (m tuiModel) micLine() string {
	var line string
	switch {
	case !m.micOK:
		line = warnStyle.Render(center("no microphone — manual mode", m.width))
	case m.step.Voice:
		line = statusStyle.Render(center("🎤 listening — speak and pause to advance", m.width))
	default:
		line = statusStyle.Render(center("🔇 voice off", m.width))
	}
	if m.copied {
		line += " " + copiedStyle.Render("[✓ copied]")
	}
	return line
}

func (m tuiModel) viewScroll() string {
	w := m.width
	runes := []rune(m.text)
	padded := make([]rune, 0, len(runes)+2*w)
	padded = append(padded, spaces(w)...)
	padded = append(padded, runes...)
	padded = append(padded, spaces(w)...)

	start := int(m.scroll.Offset)
	if start < 0 {
		start = 0
	}
	if start > len(padded)-w {
		start = len(padded) - w
	}
	visible := string(padded[start : start+w])

	marquee := unitStyle.Render(visible)

	barWidth := w - 20
	if barWidth < 10 {
		barWidth = 10
	}
	progress := m.scroll.Progress
	if progress > 1 {
		progress = 1
	}
	filled := int(float64(barWidth) * progress)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	status := statusStyle.Render(center(fmt.Sprintf("[%s] %s", bar, speedIndicator(m.scroll)), w))
	help := helpStyle.Render(center("→/← speed · space pause · c copy · q quit", w))

	topPad := (m.height - 4) / 2
	if topPad < 0 {
		topPad = 0
	}
	botPad := m.height - 4 - topPad
	if botPad < 0 {
		botPad = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPad))
	b.WriteString(marquee + "\n")
	b.WriteString(strings.Repeat("\n", botPad))
	b.WriteString(status + "\n")
	b.WriteString(help)
	return b.String()
}

func speedIndicator(v prompt.ScrollView) string {
	if v.Paused {
		return "⏸ PAUSED"
	}
	arrow := "→→"
	if v.Direction < 0 {
		arrow = "←←"
	}
	switch v.Multiplier {
	case 1.0:
		return arrow + " 1x"
	case 1.5:
		return arrow + " 1.5x"
	case 2.0:
		return arrow + " 2x"
	}
	return fmt.Sprintf("%s %.1fx", arrow, v.Multiplier)
}

func spaces(n int) []rune {
	return []rune(strings.Repeat(" ", n))
}

func center(s string, width int) string {
	if pad := (width - lipgloss.Width(s)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		switch {
		case cur == "":
			cur = word
		case lipgloss.Width(cur)+1+lipgloss.Width(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
