// Package tui provides a Bubble Tea terminal user interface for tunefetch.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/tunefetch/internal/audio"
	"github.com/handiism/tunefetch/internal/model"
	"github.com/handiism/tunefetch/internal/pipeline"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// State represents the current UI state.
type State int

const (
	StateForm State = iota
	StateSearchingCovers
	StateCoverSelect
	StateSearchingVideos
	StateVideoSelect
	StateDownloading
	StateTagging
	StateComplete
	StateError
)

// Form fields, in tab order.
const (
	fieldSong = iota
	fieldArtist
	fieldAlbum
	fieldGenre
	fieldCount
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 8

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	logs     []LogEntry
	err      error
	verbose  bool

	// Pipeline and the channel its callbacks feed
	pipeline *pipeline.Pipeline
	events   <-chan tea.Msg

	// Current request
	query    model.SearchQuery
	covers   []model.ImageCandidate
	videos   []model.VideoCandidate
	cursor   int
	cover    *model.CoverImage
	video    *model.VideoCandidate
	artifact *model.AudioArtifact
	summary  string

	// Stream progress
	readBytes  int64
	totalBytes int64

	ctx    context.Context
	cancel context.CancelFunc

	width int
}

// Message types
type (
	// ProgressMsg carries a pipeline progress event.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// BytesMsg reports how much of the audio stream has been read.
	BytesMsg struct {
		Read  int64
		Total int64
	}

	coversMsg struct {
		Candidates []model.ImageCandidate
	}

	videosMsg struct {
		Cover  *model.CoverImage
		Videos []model.VideoCandidate
	}

	acquiredMsg struct {
		Artifact *model.AudioArtifact
		Err      error
	}

	taggedMsg struct {
		Summary string
		Err     error
	}
)

// NewModel creates a new TUI model driving p. events delivers ProgressMsg
// and BytesMsg values produced by p's callbacks; it may be nil.
func NewModel(p *pipeline.Pipeline, events <-chan tea.Msg, verbose bool) Model {
	placeholders := []string{"Song name", "Artist", "Album (optional)", "Genre (optional)"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		ti.Width = 50
		inputs[i] = ti
	}
	inputs[fieldSong].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateForm,
		inputs:   inputs,
		spinner:  sp,
		progress: prog,
		verbose:  verbose,
		pipeline: p,
		events:   events,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.listen())
}

// listen waits for the next callback message.
func (m Model) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.addLog(msg.Event)
		cmds = append(cmds, m.listen())

	case BytesMsg:
		m.readBytes, m.totalBytes = msg.Read, msg.Total
		if msg.Total > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(msg.Read)/float64(msg.Total)))
		}
		cmds = append(cmds, m.listen())

	case coversMsg:
		if len(msg.Candidates) == 0 {
			m.state = StateSearchingVideos
			cmds = append(cmds, m.searchVideos(nil))
			break
		}
		m.covers = msg.Candidates
		m.cursor = 0
		m.state = StateCoverSelect

	case videosMsg:
		m.cover = msg.Cover
		if len(msg.Videos) == 0 {
			m.state = StateError
			m.err = fmt.Errorf("could not find any matches for '%s' by '%s', please refine your search", m.query.SongName, m.query.Artist)
			break
		}
		m.videos = msg.Videos
		m.cursor = 0
		m.state = StateVideoSelect

	case acquiredMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = fmt.Errorf("failed to download the audio: %w", msg.Err)
			break
		}
		m.artifact = msg.Artifact
		m.state = StateTagging
		cmds = append(cmds, m.tag())

	case taggedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = fmt.Errorf("saved %s but tagging failed: %w", m.artifact.FilePath, msg.Err)
			break
		}
		m.summary = msg.Summary
		m.state = StateComplete

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateForm {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes key presses. handled is false when the key should
// fall through to the focused text input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return tea.Quit, true

	case "esc":
		if m.state == StateForm {
			m.cancel()
			return tea.Quit, true
		}
	}

	switch m.state {
	case StateForm:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return nil, true
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return nil, true
		case "enter":
			return m.submit(), true
		}

	case StateCoverSelect:
		return m.moveOrChoose(msg, len(m.covers), m.chooseCover), true

	case StateVideoSelect:
		return m.moveOrChoose(msg, len(m.videos), m.chooseVideo), true

	case StateComplete, StateError:
		switch msg.String() {
		case "q":
			m.cancel()
			return tea.Quit, true
		case "r":
			m.reset()
			return textinput.Blink, true
		}
		return nil, true

	default:
		return nil, true
	}
	return nil, false
}

// moveOrChoose handles list navigation. Row 0 is the skip/exit entry and
// rows 1..n are candidates, matching the selection numbering.
func (m *Model) moveOrChoose(msg tea.KeyMsg, n int, choose func(int) tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n {
			m.cursor++
		}
	case "enter":
		return choose(m.cursor)
	default:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
			return choose(int(msg.Runes[0] - '0'))
		}
	}
	return nil
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	q := model.NewSearchQuery(
		m.inputs[fieldSong].Value(),
		m.inputs[fieldArtist].Value(),
		m.inputs[fieldAlbum].Value(),
		m.inputs[fieldGenre].Value(),
	)
	if err := q.Validate(); err != nil {
		m.addLog(pipeline.ProgressEvent{Message: "Song name and artist cannot be empty. Please try again.", Level: pipeline.LevelError})
		return nil
	}

	m.query = q
	m.logs = nil
	m.state = StateSearchingCovers
	return m.searchCovers()
}

func (m *Model) chooseCover(choice int) tea.Cmd {
	picked, err := pipeline.ChooseCover(choice, m.covers)
	if err != nil {
		m.addLog(pipeline.ProgressEvent{Message: "Invalid choice. Skipping album cover.", Level: pipeline.LevelWarning})
		picked = nil
	}
	m.state = StateSearchingVideos
	return m.searchVideos(picked)
}

func (m *Model) chooseVideo(choice int) tea.Cmd {
	video, err := pipeline.ChooseVideo(choice, m.videos)
	if err != nil {
		m.addLog(pipeline.ProgressEvent{Message: "Invalid selection. Please try again.", Level: pipeline.LevelWarning})
		return nil
	}
	if video == nil {
		m.cancel()
		return tea.Quit
	}
	m.video = video
	m.readBytes, m.totalBytes = 0, 0
	m.state = StateDownloading
	return tea.Batch(m.acquire(), m.progress.SetPercent(0))
}

func (m *Model) reset() {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.state = StateForm
	m.logs = nil
	m.err = nil
	m.covers, m.videos = nil, nil
	m.cover, m.video, m.artifact = nil, nil, nil
	m.summary = ""
	m.cursor = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(fieldSong)
}

func (m *Model) addLog(event pipeline.ProgressEvent) {
	// Filter verbose messages if not in verbose mode
	if event.Level == pipeline.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// searchCovers runs the cover search in the background.
func (m Model) searchCovers() tea.Cmd {
	p, ctx, q := m.pipeline, m.ctx, m.query
	return func() tea.Msg {
		return coversMsg{Candidates: p.ResolveCovers(ctx, q)}
	}
}

// searchVideos downloads the picked cover, if any, then searches videos.
func (m Model) searchVideos(picked *model.ImageCandidate) tea.Cmd {
	p, ctx, q := m.pipeline, m.ctx, m.query
	return func() tea.Msg {
		var cover *model.CoverImage
		if picked != nil {
			cover = p.FetchCover(ctx, q, *picked)
		}
		return videosMsg{Cover: cover, Videos: p.Locate(ctx, q)}
	}
}

func (m Model) acquire() tea.Cmd {
	p, ctx, q, video := m.pipeline, m.ctx, m.query, *m.video
	return func() tea.Msg {
		artifact, err := p.Acquire(ctx, q, video)
		return acquiredMsg{Artifact: artifact, Err: err}
	}
}

func (m Model) tag() tea.Cmd {
	p, q, artifact, cover := m.pipeline, m.query, m.artifact, m.cover
	return func() tea.Msg {
		if _, err := p.Tag(artifact, q, cover); err != nil {
			return taggedMsg{Err: err}
		}
		summary, err := audio.Inspect(artifact.FilePath)
		if err != nil {
			return taggedMsg{Summary: artifact.FilePath}
		}
		return taggedMsg{Summary: summary.String()}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ tunefetch"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Find a song, pick a cover, get a tagged MP3"))
	b.WriteString("\n\n")

	switch m.state {
	case StateForm:
		b.WriteString(m.viewForm())
	case StateSearchingCovers:
		b.WriteString(m.viewWorking("Searching album covers..."))
	case StateCoverSelect:
		b.WriteString(m.viewCovers())
	case StateSearchingVideos:
		b.WriteString(m.viewWorking("Searching videos..."))
	case StateVideoSelect:
		b.WriteString(m.viewVideos())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateTagging:
		b.WriteString(m.viewWorking("Tagging MP3 file..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	labels := []string{"Song", "Artist", "Album", "Genre"}
	for i, input := range m.inputs {
		label := fmt.Sprintf("%-7s", labels[i])
		if i == m.focus {
			b.WriteString(subtitleStyle.Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewWorking(label string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewCovers() string {
	rows := make([]string, 0, len(m.covers)+1)
	rows = append(rows, "0. Skip album cover")
	for i, c := range m.covers {
		rows = append(rows, fmt.Sprintf("%d. %s", i+1, c.URL))
	}
	return m.renderList("Choose an album cover:", rows)
}

func (m Model) viewVideos() string {
	rows := make([]string, 0, len(m.videos)+1)
	rows = append(rows, "0. Exit")
	for i, v := range m.videos {
		rows = append(rows, fmt.Sprintf("%d. %s", i+1, v.String()))
	}
	return m.renderList("Found the following results:", rows)
}

func (m Model) renderList(title string, rows []string) string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n\n")
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if m.video != nil {
		b.WriteString(infoStyle.Render(m.video.Title))
		b.WriteString("\n\n")
	}

	var percent float64
	if m.totalBytes > 0 {
		percent = float64(m.readBytes) / float64(m.totalBytes)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Downloaded: %.2f / %.2f MB",
		float64(m.readBytes)/1024/1024,
		float64(m.totalBytes)/1024/1024,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	path := ""
	if m.artifact != nil {
		path = m.artifact.FilePath
	}
	return boxStyle.Render(fmt.Sprintf("✨ Done!\n\n%s\n\n%s", path, m.summary))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateForm:
		return "tab: next field • enter: search • esc: quit"
	case StateCoverSelect:
		return "↑/↓: move • enter or 0-9: choose • 0: skip cover"
	case StateVideoSelect:
		return "↑/↓: move • enter or 0-9: choose • 0: exit"
	case StateComplete, StateError:
		return "r: another song • q: quit"
	}
	return "ctrl+c: quit"
}

// Run starts the TUI application. newPipeline is called with the
// callbacks that feed the UI and must return the pipeline to drive.
func Run(newPipeline func(onProgress func(pipeline.ProgressEvent), onBytes func(read, total int64)) (*pipeline.Pipeline, error), verbose bool) error {
	events := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) {
		// Drop updates rather than block the pipeline when the UI lags.
		select {
		case events <- msg:
		default:
		}
	}

	p, err := newPipeline(
		func(e pipeline.ProgressEvent) { send(ProgressMsg{Event: e}) },
		func(read, total int64) { send(BytesMsg{Read: read, Total: total}) },
	)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(NewModel(p, events, verbose), tea.WithAltScreen()).Run()
	return err
}
