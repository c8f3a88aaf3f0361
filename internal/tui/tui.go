package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/sessions"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

type viewMode int

const (
	listView viewMode = iota
	timelineView
)

// Options configures the session browser.
type Options struct {
	Store           *sessions.Store
	PageSize        int
	PreviewMaxChars int
}

type model struct {
	opts Options
	ctx  context.Context

	currentMode viewMode
	descriptors []models.SessionDescriptor
	total       int
	offset      int
	cursor      int
	previews    map[string]string // log path -> preview text
	timeline    []models.NormalizedMessage

	leftViewport  viewport.Model // sessions list
	rightViewport viewport.Model // preview / timeline
	spinner       *Spinner
	loading       bool
	loadingWhat   string
	ready         bool
	err           error
	width         int
	height        int
}

func initialModel(ctx context.Context, opts Options) model {
	return model{
		opts:        opts,
		ctx:         ctx,
		currentMode: listView,
		previews:    make(map[string]string),
		spinner:     NewSpinner(),
		loading:     true,
		loadingWhat: "Loading sessions",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadSessionsCmd(m.ctx, m.opts.Store, m.opts.PageSize, 0),
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := msg.Width/2 - 1
		rightWidth := msg.Width - leftWidth - 1
		viewHeight := msg.Height - 3

		if !m.ready {
			m.leftViewport = viewport.New(leftWidth, viewHeight)
			m.rightViewport = viewport.New(rightWidth, viewHeight)
			m.ready = true
		} else {
			m.leftViewport.Width = leftWidth
			m.leftViewport.Height = viewHeight
			m.rightViewport.Width = rightWidth
			m.rightViewport.Height = viewHeight
		}
		m.updateViewports()

	case TickMsg:
		if m.loading {
			m.spinner.Next()
		}
		cmds = append(cmds, tickCmd())

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			m.err = msg.Error
			break
		}
		m.err = nil
		m.descriptors = msg.Descriptors
		m.total = msg.Total
		m.offset = msg.Offset
		m.cursor = 0
		m.updateViewports()
		if cmd := m.previewSelectedCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case PreviewLoadedMsg:
		if msg.Error == nil && msg.Found {
			m.previews[msg.LogPath] = msg.Preview
		} else if msg.Error == nil {
			m.previews[msg.LogPath] = "(no user messages)"
		}
		m.updateViewports()

	case TimelineLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			m.err = msg.Error
			break
		}
		m.timeline = msg.Messages
		m.currentMode = timelineView
		m.updateViewports()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.currentMode == listView && m.cursor > 0 {
				m.cursor--
				m.updateViewports()
				if cmd := m.previewSelectedCmd(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}

		case "down", "j":
			if m.currentMode == listView && m.cursor < len(m.descriptors)-1 {
				m.cursor++
				m.updateViewports()
				if cmd := m.previewSelectedCmd(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}

		case "right", "n":
			if m.currentMode == listView && m.offset+m.opts.PageSize < m.total {
				m.loading = true
				m.loadingWhat = "Loading sessions"
				cmds = append(cmds, loadSessionsCmd(m.ctx, m.opts.Store, m.opts.PageSize, m.offset+m.opts.PageSize))
			}

		case "left", "p":
			if m.currentMode == listView && m.offset > 0 {
				prev := m.offset - m.opts.PageSize
				if prev < 0 {
					prev = 0
				}
				m.loading = true
				m.loadingWhat = "Loading sessions"
				cmds = append(cmds, loadSessionsCmd(m.ctx, m.opts.Store, m.opts.PageSize, prev))
			}

		case "r":
			if m.currentMode == listView {
				m.loading = true
				m.loadingWhat = "Refreshing sessions"
				cmds = append(cmds, loadSessionsCmd(m.ctx, m.opts.Store, m.opts.PageSize, m.offset))
			}

		case "enter":
			if m.currentMode == listView && m.cursor < len(m.descriptors) {
				m.loading = true
				m.loadingWhat = "Loading conversation"
				cmds = append(cmds, loadTimelineCmd(m.ctx, m.opts.Store, m.descriptors[m.cursor].SessionID))
			}

		case "esc", "backspace":
			if m.currentMode == timelineView {
				m.currentMode = listView
				m.timeline = nil
				m.updateViewports()
			}
		}
	}

	var leftCmd, rightCmd tea.Cmd
	m.leftViewport, leftCmd = m.leftViewport.Update(msg)
	m.rightViewport, rightCmd = m.rightViewport.Update(msg)
	cmds = append(cmds, leftCmd, rightCmd)

	return m, tea.Batch(cmds...)
}

// previewSelectedCmd requests the preview for the session under the
// cursor unless it is already cached.
func (m model) previewSelectedCmd() tea.Cmd {
	if m.cursor >= len(m.descriptors) {
		return nil
	}
	path := m.descriptors[m.cursor].LogPath
	if _, ok := m.previews[path]; ok {
		return nil
	}
	return loadPreviewCmd(m.ctx, path, m.opts.PreviewMaxChars)
}

func (m *model) updateViewports() {
	if !m.ready {
		return
	}
	m.leftViewport.SetContent(m.renderSessionsList())
	if m.currentMode == timelineView {
		m.rightViewport.SetContent(m.renderTimeline())
	} else {
		m.rightViewport.SetContent(m.renderPreview())
	}
}

func (m model) renderSessionsList() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Sessions") + "\n")
	s.WriteString(strings.Repeat("─", max(m.leftViewport.Width-2, 10)) + "\n\n")

	if len(m.descriptors) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No sessions found"))
		return s.String()
	}

	for i, desc := range m.descriptors {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		dirStyle := lipgloss.NewStyle()
		if i == m.cursor {
			dirStyle = dirStyle.Foreground(lipgloss.Color("212")).Bold(true)
		} else {
			dirStyle = dirStyle.Foreground(lipgloss.Color("252"))
		}

		line := fmt.Sprintf("%s%s  %s",
			cursor,
			desc.ModifiedAt.Format("01-02 15:04"),
			displayName(desc))
		s.WriteString(dirStyle.Render(line) + "\n")

		idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		if i == m.cursor {
			idStyle = idStyle.Foreground(lipgloss.Color("245"))
		}
		s.WriteString(idStyle.Render("  "+truncate(desc.SessionID, 14)) + "\n")

		if i < len(m.descriptors)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func (m model) renderPreview() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Preview") + "\n")
	s.WriteString(strings.Repeat("─", max(m.rightViewport.Width-2, 10)) + "\n\n")

	if m.cursor >= len(m.descriptors) {
		return s.String()
	}

	preview, ok := m.previews[m.descriptors[m.cursor].LogPath]
	if !ok {
		s.WriteString(m.spinner.View("Loading preview"))
		return s.String()
	}

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	for _, line := range wrapText(preview, max(m.rightViewport.Width-4, 20)) {
		s.WriteString(textStyle.Render(line) + "\n")
	}
	return s.String()
}

func (m model) renderTimeline() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Conversation") + "\n")
	s.WriteString(strings.Repeat("─", max(m.rightViewport.Width-2, 10)) + "\n\n")

	if len(m.timeline) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No messages found"))
		return s.String()
	}

	roleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	wrapWidth := max(m.rightViewport.Width-5, 20)
	for i, msg := range m.timeline {
		s.WriteString(roleStyle.Render(messageTag(msg)) + "\n")
		for _, line := range wrapText(msg.Content, wrapWidth) {
			s.WriteString("  " + textStyle.Render(line) + "\n")
		}
		if i < len(m.timeline)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

// messageTag builds the one-line header shown above each message.
func messageTag(msg models.NormalizedMessage) string {
	tag := fmt.Sprintf("[%s]", msg.Role)
	switch msg.Type {
	case models.MessageTypeToolUse:
		tag = fmt.Sprintf("[%s → %s]", msg.Role, msg.ToolName)
	case models.MessageTypeToolResult:
		tag = fmt.Sprintf("[%s ↩ %s]", msg.Role, msg.ToolName)
	case models.MessageTypeThinking:
		tag = fmt.Sprintf("[%s thinking]", msg.Role)
	case models.MessageTypeSystem:
		tag = "[system]"
	}
	if msg.Team != "" {
		tag = fmt.Sprintf("%s (%s)", tag, msg.Team)
	}
	return tag
}

func displayName(desc models.SessionDescriptor) string {
	dir := desc.DisplayDirectory
	if dir == "" {
		dir = desc.Directory
	}
	if dir == "" {
		return "Unknown"
	}
	parts := strings.Split(strings.TrimRight(dir, "/"), "/")
	return parts[len(parts)-1]
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)
	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)
	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.leftViewport.View()),
		dividerStyle.Render(divider.String()),
		rightStyle.Render(m.rightViewport.View()),
	)
}

func (m model) renderHeader() string {
	title := fmt.Sprintf("Agent Dashboard - %d sessions", m.total)
	if m.total > 0 {
		page := m.offset/m.opts.PageSize + 1
		pages := (m.total + m.opts.PageSize - 1) / m.opts.PageSize
		title = fmt.Sprintf("%s (page %d/%d)", title, page, pages)
	}
	if m.loading {
		title = fmt.Sprintf("%s  %s", title, m.spinner.View(m.loadingWhat))
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))
	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • ←/→: page • enter: open"
	if m.currentMode == timelineView {
		info = "↑/↓: scroll • esc: back"
	}
	info += " • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	return style.Render(info)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Show runs the session browser until the user quits.
func Show(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		initialModel(ctx, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
