package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/racesim/internal/catalog"
	"github.com/san-kum/racesim/internal/resolve"
)

var ErrCancelled = errors.New("tui: selection cancelled")

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type step int

const (
	stepVehicles step = iota
	stepBoost
	stepWing
	stepSkirt
	stepDone
)

var prompts = map[step]string{
	stepVehicles: "vehicles (comma separated)",
	stepBoost:    "boost stage (a/b/c/d/n)",
	stepWing:     "fit a wing? (oui/non)",
	stepSkirt:    "fit a skirt? (oui/non)",
}

// Wizard asks for the run selection one question at a time. An invalid
// vehicle list is asked again; other answers are taken as given and fall
// back to their neutral choice.
type Wizard struct {
	cat     *catalog.Catalog
	step    step
	editBuf string
	answers resolve.Answers

	problem   string
	notices   []string
	cancelled bool
}

func NewWizard(cat *catalog.Catalog) Wizard {
	return Wizard{cat: cat}
}

func (m Wizard) Init() tea.Cmd { return nil }

func (m Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Wizard) handleKey(msg tea.KeyMsg) (Wizard, tea.Cmd) {
	if m.step == stepDone {
		return m, tea.Quit
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		return m.submit()
	case "backspace":
		if len(m.editBuf) > 0 {
			r := []rune(m.editBuf)
			m.editBuf = string(r[:len(r)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.editBuf += string(msg.Runes)
		case tea.KeySpace:
			m.editBuf += " "
		}
	}
	return m, nil
}

func (m Wizard) submit() (Wizard, tea.Cmd) {
	answer := m.editBuf
	m.editBuf = ""

	switch m.step {
	case stepVehicles:
		if _, err := resolve.ParseVehicles(answer, m.cat); err != nil {
			m.problem = err.Error()
			return m, nil
		}
		m.problem = ""
		m.answers.Vehicles = answer
		m.step = stepBoost
	case stepBoost:
		if _, ok := resolve.ParseBoost(answer); !ok {
			m.notices = append(m.notices, fmt.Sprintf("boost %q not recognized, no boost", answer))
		}
		m.answers.Boost = answer
		m.step = stepWing
	case stepWing:
		if _, ok := resolve.ParseAnswer(answer); !ok {
			m.notices = append(m.notices, fmt.Sprintf("answer %q not recognized, no wing", answer))
		}
		m.answers.Wing = answer
		m.step = stepSkirt
	case stepSkirt:
		if _, ok := resolve.ParseAnswer(answer); !ok {
			m.notices = append(m.notices, fmt.Sprintf("answer %q not recognized, no skirt", answer))
		}
		m.answers.Skirt = answer
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

// Result returns the raw answers once every question is answered. It
// returns ErrCancelled when the wizard was left early.
func (m Wizard) Result() (resolve.Answers, error) {
	if m.cancelled || m.step != stepDone {
		return resolve.Answers{}, ErrCancelled
	}
	return m.answers, nil
}

func (m Wizard) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("r a c e s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	b.WriteString("      " + dim.Render("garage: ") + white.Render(strings.Join(m.cat.Names(), ", ")) + "\n\n")

	answered := []string{m.answers.Vehicles, m.answers.Boost, m.answers.Wing, m.answers.Skirt}
	for s := stepVehicles; s < stepDone; s++ {
		label := fmt.Sprintf("%-28s", prompts[s])
		switch {
		case s < m.step:
			b.WriteString("        " + dim.Render(label) + green.Render(answered[s]) + "\n")
		case s == m.step:
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(label) + magenta.Render(m.editBuf+"▋") + "\n")
		default:
			b.WriteString("        " + dimmer.Render(label) + "\n")
		}
	}

	if m.problem != "" {
		b.WriteString("\n      " + red.Render(m.problem) + "\n")
	}
	for _, n := range m.notices {
		b.WriteString("      " + yellow.Render(n) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      enter confirm   esc quit") + "\n")

	return b.String()
}

// Run shows the wizard on the terminal and returns the selection. The
// answers are resolved after the program has released the terminal, so
// fallback warnings do not land in the drawn view.
func Run(cat *catalog.Catalog, opts ...tea.ProgramOption) (resolve.Selection, error) {
	final, err := tea.NewProgram(NewWizard(cat), opts...).Run()
	if err != nil {
		return resolve.Selection{}, fmt.Errorf("tui: %w", err)
	}
	answers, err := final.(Wizard).Result()
	if err != nil {
		return resolve.Selection{}, err
	}
	return answers.Selection(cat)
}
