// Package viz renders a live terminal view of a running trace.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/integrators"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps the problem on every tick and keeps a bounded history of
// the two plot components.
type Model struct {
	problem flow.Problem
	integ   integrators.Integrator
	info    flow.PlotInfo
	name    string

	x  flow.State
	t  float64
	dt float64

	tangent  bool
	fps      int
	running  bool
	singular bool

	xHist []float64
	yHist []float64
}

func NewModel(p flow.Problem, integ integrators.Integrator, x0 flow.State, dt float64, tangent bool, fps int, name string) Model {
	var x flow.State
	if tangent {
		x = flow.State(flow.NewExtended(x0))
	} else {
		x = x0.Clone()
	}
	return Model{
		problem: p,
		integ:   integ,
		info:    p.Plot(),
		name:    name,
		x:       x,
		dt:      dt,
		tangent: tangent,
		fps:     fps,
		running: true,
		xHist:   make([]float64, 0, historyCapacity),
		yHist:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) rhs() flow.RHS {
	if m.tangent {
		return func(t float64, x flow.State) flow.State {
			return flow.State(m.problem.FTangent(t, flow.Extended(x)))
		}
	}
	return m.problem.F
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && !m.singular {
			// A handful of substeps per frame keeps the view responsive
			// without tying the physics step to the frame rate.
			for i := 0; i < 5; i++ {
				next := m.integ.Step(m.rhs(), m.x, m.t, m.dt)
				if !next.IsValid() {
					m.singular = true
					break
				}
				m.x = next
				m.t += m.dt
			}
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record() {
	m.xHist = append(m.xHist, m.x[m.info.XIndex])
	m.yHist = append(m.yHist, m.x[m.info.YIndex])
	if len(m.xHist) > historyCapacity {
		m.xHist = m.xHist[1:]
		m.yHist = m.yHist[1:]
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("fieldtrace live — %s", m.name)))
	b.WriteString("\n")

	if len(m.xHist) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.xHist,
			asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(m.info.XLabel))))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.yHist,
			asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(m.info.YLabel))))
		b.WriteString("\n")
	}

	stats := []string{
		labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.4f", m.t)),
		labelStyle.Render(m.info.XLabel) + valueStyle.Render(fmt.Sprintf("%.6f", m.x[m.info.XIndex])),
		labelStyle.Render(m.info.YLabel) + valueStyle.Render(fmt.Sprintf("%.6f", m.x[m.info.YIndex])),
	}
	if m.tangent {
		_, tg := flow.Extended(m.x).Split(m.problem.Size())
		stats = append(stats,
			labelStyle.Render("det M")+valueStyle.Render(fmt.Sprintf("%.6f", tg.Det())),
			labelStyle.Render("tr M")+valueStyle.Render(fmt.Sprintf("%.6f", tg.Trace())),
		)
	}
	b.WriteString(statsStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")

	if m.singular {
		b.WriteString(errorStyle.Render("trajectory hit a singular evaluation — stopped"))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space pause · q quit"))
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(p flow.Problem, integ integrators.Integrator, x0 flow.State, dt float64, tangent bool, fps int, name string) error {
	prog := tea.NewProgram(NewModel(p, integ, x0, dt, tangent, fps, name))
	_, err := prog.Run()
	return err
}
