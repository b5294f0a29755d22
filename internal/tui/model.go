package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hawkai/internal/domain"
	"hawkai/internal/service"
)

// AskPort is the TUI-facing subset of the audit service.
type AskPort interface {
	Ask(ctx context.Context, question string, ref time.Time) (service.Answer, error)
}

type answerMsg struct {
	answer service.Answer
	err    error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service  AskPort
	input    textinput.Model
	viewport viewport.Model
	banner   string
	status   string
	answer   *service.Answer
	waiting  bool
	ready    bool
}

// New creates a new TUI model instance. The banner is the policy summary
// shown under the header.
func New(svc AskPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Digite sua pergunta e pressione Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: svc, input: ti, viewport: vp, banner: banner, status: "Pronto. Digite uma pergunta."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + banner
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.answer = nil
			m.status = phraseError(msg.err)
		} else {
			a := msg.answer
			m.answer = &a
			m.status = fmt.Sprintf("ROTA: %s", strings.ToUpper(string(a.Intent)))
		}
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.waiting = true
				m.status = "CONSULTANDO..."
				m.input.SetValue("")
				return m, askCmd(m.service, q)
			}
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func askCmd(svc AskPort, question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := svc.Ask(context.Background(), question, time.Now())
		return answerMsg{answer: ans, err: err}
	}
}

// phraseError turns routing failures into clarifications instead of raw
// error text; anything else surfaces as-is.
func phraseError(err error) string {
	var unknown *domain.UnknownIntentError
	if errors.As(err, &unknown) {
		return "Nao entendi a pergunta. Pergunte sobre a politica, emails, transacoes ou peca uma auditoria."
	}
	var missing *domain.MissingEntityError
	if errors.As(err, &missing) {
		return "Auditoria exige uma pessoa. Diga o nome de quem devo investigar."
	}
	return "Erro: " + err.Error()
}

// View renders the TUI layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("HawkAI Terminal")
	banner := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.banner)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + banner + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.answer == nil {
		return "Nenhuma resposta ainda."
	}
	a := m.answer
	title := fmt.Sprintf("PERGUNTA: %s", a.Question)
	if a.Person != "" {
		title += fmt.Sprintf("\nPESSOA: %s", a.Person)
	}
	if a.Period != nil {
		title += fmt.Sprintf("\nPERIODO: %s a %s",
			a.Period.Start.Format("2006-01-02"), a.Period.End.Format("2006-01-02"))
	}
	return title + "\n\n" + a.Text
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
