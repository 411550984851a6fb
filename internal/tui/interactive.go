package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/halokit/internal/analysis"
	"github.com/san-kum/halokit/internal/config"
	"github.com/san-kum/halokit/internal/halos"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateView
)

// Numeric fields edited on the config screen, in display order.
var numericFields = []string{"omega_c", "omega_b", "h", "n_s", "sigma8", "w0", "a"}

// Fields cycled through fixed choices with left and right.
var choiceFields = []string{"mass_function", "halo_bias", "mass_def"}

var fieldStep = map[string]float64{
	"omega_c": 0.01, "omega_b": 0.005, "h": 0.01, "n_s": 0.01,
	"sigma8": 0.01, "w0": 0.05, "a": 0.05,
}

var massDefChoices = []string{"fof", "200m", "500c", "vir"}

type model struct {
	state      state
	cursor     int
	quantities []analysis.Quantity
	selected   analysis.Quantity

	cfg         *config.Config
	a           float64
	fieldCursor int
	editing     bool
	editBuf     string

	computing bool
	curve     *analysis.Curve
	err       error

	width  int
	height int
}

// NewInteractiveApp returns the explorer seeded from cfg.
func NewInteractiveApp(cfg *config.Config) *model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &model{
		state:      stateMenu,
		quantities: analysis.Quantities(),
		cfg:        cfg,
		a:          1,
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type curveMsg struct {
	curve *analysis.Curve
	err   error
}

// evaluate runs the sweep off the update loop.
func evaluate(cfg config.Config, q analysis.Quantity, a float64) tea.Cmd {
	return func() tea.Msg {
		curve, err := Compute(&cfg, q, a)
		return curveMsg{curve: curve, err: err}
	}
}

// Compute builds the cosmology and fits named by cfg and sweeps q at
// scale factor a.
func Compute(cfg *config.Config, q analysis.Quantity, a float64) (*analysis.Curve, error) {
	c, err := cfg.NewCosmology()
	if err != nil {
		return nil, err
	}
	opts := analysis.DefaultOptions()
	opts.A = a
	switch q {
	case analysis.MassFunction:
		if opts.MassFunc, err = cfg.GetMassFunc(); err != nil {
			return nil, err
		}
	case analysis.HaloBias:
		if opts.Bias, err = cfg.GetHaloBias(); err != nil {
			return nil, err
		}
	}
	return analysis.Sweep(c, q, opts)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case curveMsg:
		m.computing = false
		m.curve, m.err = msg.curve, msg.err
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateView:
		return m.viewKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.quantities)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.quantities[m.cursor]
		m.state = stateConfig
		m.fieldCursor = 0
	}
	return m, nil
}

func (m model) fieldCount() int { return len(numericFields) + len(choiceFields) }

func (m model) fieldName(i int) string {
	if i < len(numericFields) {
		return numericFields[i]
	}
	return choiceFields[i-len(numericFields)]
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := m.fieldName(m.fieldCursor)
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.setNumeric(name, v)
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < m.fieldCount()-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		if m.fieldCursor < len(numericFields) {
			m.editing = true
			m.editBuf = strconv.FormatFloat(m.numeric(name), 'g', -1, 64)
		}
	case "left", "h":
		m.adjust(name, -1)
	case "right", "l":
		m.adjust(name, 1)
	case "s":
		m.state = stateView
		m.computing = true
		m.curve, m.err = nil, nil
		return m, tea.Batch(tea.ClearScreen, evaluate(*m.cfg, m.selected, m.a))
	}
	return m, nil
}

func (m model) viewKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		return m, tea.ClearScreen
	case "c":
		m.state = stateConfig
		return m, tea.ClearScreen
	case "r":
		if !m.computing {
			m.computing = true
			return m, evaluate(*m.cfg, m.selected, m.a)
		}
	}
	return m, nil
}

func (m *model) numeric(name string) float64 {
	p := &m.cfg.Cosmology
	switch name {
	case "omega_c":
		return p.OmegaC
	case "omega_b":
		return p.OmegaB
	case "h":
		return p.H
	case "n_s":
		return p.NS
	case "sigma8":
		return p.Sigma8
	case "w0":
		return p.W0
	case "a":
		return m.a
	}
	return math.NaN()
}

func (m *model) setNumeric(name string, v float64) {
	p := &m.cfg.Cosmology
	switch name {
	case "omega_c":
		p.OmegaC = v
	case "omega_b":
		p.OmegaB = v
	case "h":
		p.H = v
	case "n_s":
		p.NS = v
	case "sigma8":
		p.Sigma8 = v
	case "w0":
		p.W0 = v
	case "a":
		m.a = math.Min(math.Max(v, 0.05), 1)
	}
}

func (m *model) adjust(name string, dir int) {
	if step, ok := fieldStep[name]; ok {
		m.setNumeric(name, m.numeric(name)+float64(dir)*step)
		return
	}
	switch name {
	case "mass_function":
		m.cfg.MassFunction = cycle(halos.ListMassFuncs(), m.cfg.MassFunction, dir)
	case "halo_bias":
		m.cfg.HaloBias = cycle(halos.ListHaloBiases(), m.cfg.HaloBias, dir)
	case "mass_def":
		m.cfg.MassDef = cycle(massDefChoices, m.cfg.MassDef, dir)
	}
}

func cycle(choices []string, cur string, dir int) string {
	i := 0
	for j, c := range choices {
		if strings.EqualFold(c, cur) {
			i = j
			break
		}
	}
	n := len(choices)
	return choices[((i+dir)%n+n)%n]
}

func (m model) choice(name string) string {
	switch name {
	case "mass_function":
		return m.cfg.MassFunction
	case "halo_bias":
		return m.cfg.HaloBias
	case "mass_def":
		return m.cfg.MassDef
	}
	return ""
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateView:
		return m.viewCurve()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("h a l o k i t") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, q := range m.quantities {
		desc := q.Description()
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", q)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", q)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(string(m.selected)) + "  " + dim.Render(m.selected.Description()) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 34)) + "\n\n")

	for i := 0; i < m.fieldCount(); i++ {
		name := m.fieldName(i)
		var val string
		if i < len(numericFields) {
			val = fmt.Sprintf("%10.4f", m.numeric(name))
			if m.editing && i == m.fieldCursor {
				val = fmt.Sprintf("%10s", m.editBuf+"▋")
			}
		} else {
			val = fmt.Sprintf("%10s", m.choice(name))
		}
		if i == m.fieldCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s compute  esc back") + "\n")
	return b.String()
}

func (m model) viewCurve() string {
	var b strings.Builder
	statusIcon := green.Render("●")
	statusText := green.Render("ready")
	switch {
	case m.computing:
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("computing")
	case m.err != nil:
		statusIcon = red.Render("✕")
		statusText = red.Render("failed")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n\n",
		statusIcon, cyan.Render(string(m.selected)), statusText, dim.Render(fmt.Sprintf("a=%.2f", m.a))))

	switch {
	case m.err != nil:
		b.WriteString("   " + red.Render(m.err.Error()) + "\n")
	case m.curve != nil:
		w := max(m.width-16, 40)
		h := max(m.height-14, 8)
		for _, line := range strings.Split(m.curve.Plot(w, h), "\n") {
			b.WriteString("   " + line + "\n")
		}
		lo, hi := m.curve.Range()
		b.WriteString(fmt.Sprintf("\n   %s %s  %s %s  %s %s\n",
			dim.Render("min"), white.Render(fmt.Sprintf("%.4g", lo)),
			dim.Render("max"), white.Render(fmt.Sprintf("%.4g", hi)),
			dim.Render("n"), white.Render(strconv.Itoa(len(m.curve.Y)))))
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render(m.curve.Name), cyan.Render(sparkline(m.curve.Y, 32))))
	}

	b.WriteString("\n" + dim.Render("   r recompute  c config  q menu") + "\n")
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		v := data[i*step]
		idx := int((v - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
