package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrenanL/hotmic/history"
)

// TUI message types
type StatusMsg struct{ Status Status }
type LiveTextMsg struct{ Text string }
type TranscriptMsg struct {
	Entry  history.Entry
	Copied bool
}
type ModeMsg struct{ Mode Mode }
type NoticeMsg struct{ Text string }
type HistorySeedMsg struct{ Entries []history.Entry }
type ToggleHideMsg struct{}
type HeaderMsg struct{ Text string }
type tickMsg time.Time

const noticeTTL = 3 * time.Second

var (
	styleIdleDot     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	styleRecDot      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	styleProcDot     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	styleMode        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleHeader      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleStamp       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleText        = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleLatest      = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	styleLive        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
	styleCopied      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleNotice      = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	styleHelp        = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	styleHelpBold    = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	stylePlaceholder = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tuiModel struct {
	status        Status
	recordStart   time.Time
	elapsed       float64
	liveText      string
	entries       []history.Entry
	copiedFlash   bool
	mode          Mode
	notice        string
	noticeAt      time.Time
	hidden        bool
	headerLine    string
	helpLine      string
	maxEntries    int
	width, height int
}

var (
	tuiProgram   *tea.Program
	tuiMu        sync.Mutex
	tuiReady     = make(chan struct{})
	tuiReadyOnce sync.Once
)

func NewTUIProgram(helpLine string, maxEntries int) *tea.Program {
	m := tuiModel{helpLine: helpLine, maxEntries: maxEntries}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func tuiTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	tuiReadyOnce.Do(func() { close(tuiReady) })
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tickMsg:
		if m.status == StatusRecording {
			m.elapsed = time.Since(m.recordStart).Seconds()
		}
		if m.notice != "" && time.Since(m.noticeAt) > noticeTTL {
			m.notice = ""
		}
		return m, tuiTick()

	case StatusMsg:
		prev := m.status
		m.status = msg.Status
		if msg.Status == StatusRecording && prev != StatusRecording {
			m.recordStart = time.Now()
			m.elapsed = 0
			m.copiedFlash = false
		}

	case LiveTextMsg:
		m.liveText = msg.Text

	case TranscriptMsg:
		m.entries = m.boundEntries(append(m.entries, msg.Entry))
		m.copiedFlash = msg.Copied
		m.liveText = ""

	case HistorySeedMsg:
		m.entries = m.boundEntries(append([]history.Entry{}, msg.Entries...))

	case ModeMsg:
		m.mode = msg.Mode

	case NoticeMsg:
		m.notice = msg.Text
		m.noticeAt = time.Now()

	case ToggleHideMsg:
		m.hidden = !m.hidden

	case HeaderMsg:
		m.headerLine = msg.Text
	}
	return m, nil
}

func (m tuiModel) statusLine() string {
	switch m.status {
	case StatusRecording:
		return styleRecDot.Render(fmt.Sprintf("● REC %.1fs", m.elapsed))
	case StatusProcessing:
		return styleProcDot.Render("● transcribing...")
	default:
		return styleIdleDot.Render("○ idle")
	}
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.hidden {
		return styleHelp.Render("hotmic (hidden)")
	}

	var b strings.Builder

	modeTag := "[PASTE]"
	if m.mode == ModeScratch {
		modeTag = "[SCRATCH]"
	}
	b.WriteString(m.statusLine() + "  " + styleMode.Render(modeTag) + "\n")
	if m.headerLine != "" {
		b.WriteString(styleHeader.Render(m.headerLine) + "\n")
	}
	b.WriteString("\n")

	if m.liveText != "" {
		for _, line := range wrapText(m.liveText, m.wrapWidth()) {
			b.WriteString(styleLive.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(styleNotice.Render(m.notice) + "\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(stylePlaceholder.Render("No transcriptions yet") + "\n")
	} else {
		visible := m.visibleEntries()
		for i, e := range visible {
			latest := i == len(visible)-1
			textStyle := styleText
			if latest {
				textStyle = styleLatest
			}
			lines := wrapText(e.Text, m.wrapWidth())
			for j, line := range lines {
				if j == 0 {
					b.WriteString(styleStamp.Render("["+e.Timestamp+"] ") + textStyle.Render(line))
				} else {
					b.WriteString(strings.Repeat(" ", len(e.Timestamp)+3) + textStyle.Render(line))
				}
				if latest && j == len(lines)-1 && m.copiedFlash {
					b.WriteString(" " + styleCopied.Render("[✓ copied]"))
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	if m.helpLine != "" {
		parts := strings.SplitN(m.helpLine, " ", 2)
		b.WriteString(styleHelpBold.Render(parts[0]))
		if len(parts) > 1 {
			b.WriteString(styleHelp.Render(" " + parts[1]))
		}
		b.WriteString("\n")
	}
	b.WriteString(styleHelp.Render("hotmic " + version))

	return b.String()
}

// boundEntries evicts the oldest entries so the model mirrors the
// dispatcher's ring capacity instead of growing for the process lifetime.
func (m tuiModel) boundEntries(entries []history.Entry) []history.Entry {
	if m.maxEntries <= 0 || len(entries) <= m.maxEntries {
		return entries
	}
	return entries[len(entries)-m.maxEntries:]
}

func (m tuiModel) wrapWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	return w
}

// visibleEntries trims the ring to what fits the terminal, keeping
// the newest at the bottom.
func (m tuiModel) visibleEntries() []history.Entry {
	budget := m.height - 8
	if budget < 1 {
		budget = 1
	}
	if len(m.entries) <= budget {
		return m.entries
	}
	return m.entries[len(m.entries)-budget:]
}

// wrapText splits on rune boundaries so multi-byte text never renders
// a torn character.
func wrapText(text string, width int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(runes) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, string(runes[:splitAt]))
		runes = runes[splitAt:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return lines
}

// tuiSink adapts the EventSink contract onto the Bubble Tea program.
type tuiSink struct{}

func (tuiSink) StatusChanged(s Status) { tuiSend(StatusMsg{Status: s}) }
func (tuiSink) LiveText(text string)   { tuiSend(LiveTextMsg{Text: text}) }
func (tuiSink) Transcript(e history.Entry, copied bool) {
	tuiSend(TranscriptMsg{Entry: e, Copied: copied})
}
func (tuiSink) ModeChanged(m Mode) { tuiSend(ModeMsg{Mode: m}) }
func (tuiSink) Notice(text string) { tuiSend(NoticeMsg{Text: text}) }
