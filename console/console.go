package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// Console is the interactive terminal UI: styled output, yes/no prompts
// and a progress spinner. Reads from stdin, writes to stdout.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New() *Console {
	return &Console{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

func (c *Console) Info(format string, args ...interface{}) {
	fmt.Fprintln(c.out, infoStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Success(format string, args ...interface{}) {
	fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Warn(format string, args ...interface{}) {
	fmt.Fprintln(c.out, warnStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Error(format string, args ...interface{}) {
	fmt.Fprintln(c.out, errorStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Print(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Confirm asks a yes/no question and returns true only on an explicit
// "y" or "yes". Anything else, including a read error, declines.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprint(c.out, promptStyle.Render(prompt+" [y/N] "))

	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Spin shows an animated progress indicator until the returned stop
// function is called. Input is detached from stdin so a later Confirm
// still reads cleanly.
func (c *Console) Spin(label string) func() {
	m := spinModel{spinner: newSpinner(), label: label}
	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithOutput(os.Stdout))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := p.Run(); err != nil {
			fmt.Fprintln(c.out, label+"...")
		}
	}()

	return func() {
		p.Quit()
		<-done
	}
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return s
}

type spinModel struct {
	spinner spinner.Model
	label   string
}

func (m spinModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}
