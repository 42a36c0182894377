package report

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/foodrescue/rescue-cli/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// model renders eagerly; the program only exists to flush the view and
// quit, the payload is fully formatted before it starts.
type model struct {
	output string
}

func newModel(payload application.SessionReport, opts RenderOptions) model {
	return model{output: renderView(payload, opts, newStyles())}
}

func (m model) Init() tea.Cmd {
	return tea.Quit
}

func (m model) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func (m model) View() string {
	return m.output
}

func Render(payload application.SessionReport, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(payload, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
