package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/habipro/habipay/internal/ledger"
	"github.com/habipro/habipay/internal/payment"
)

const chartBarWidth = 30

type ChartModel struct {
	CommonModel
	svc *payment.Service

	year    int
	records []ledger.PaymentRecord
	loading bool
	err     error
}

func NewChartModel(svc *payment.Service, year int) ChartModel {
	if year == 0 {
		year = time.Now().Year()
	}

	return ChartModel{
		svc:     svc,
		year:    year,
		loading: true,
	}
}

func (m ChartModel) Title() string { return "Loyers par mois" }

func (m ChartModel) ShortHelp() string {
	return "Esc: retour | ←/→: année | r: actualiser"
}

func (m ChartModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chartLoadedMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.records = msg.records

		return m, nil

	case tea.WindowSizeMsg:
		m.SetSize(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.year--
			return m, nil
		case "right", "l":
			m.year++
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m ChartModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement du registre...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorMessage(m.err))
	}

	buckets, excluded := ledger.Aggregate(ledger.FilterYear(m.records, m.year))

	var max int64
	for _, b := range buckets {
		if b.Amount > max {
			max = b.Amount
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	barWidth := int64(m.barWidth())

	lines := make([]string, 0, len(buckets)+3)
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Année %d", m.year)), "")

	for _, b := range buckets {
		width := 0
		if max > 0 {
			width = int(b.Amount * barWidth / max)
		}

		if b.Amount > 0 && width == 0 {
			width = 1
		}

		amount := ""
		if b.Amount > 0 {
			amount = FormatCurrency(b.Amount)
		}

		lines = append(lines, fmt.Sprintf("%-5s %s %s",
			b.Label,
			barStyle.Render(strings.Repeat("█", width)),
			amount,
		))
	}

	if excluded > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("%d paiement(s) sans mois identifiable", excluded),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(strings.Join(lines, "\n"))
}

// barWidth shrinks the bars on narrow terminals; labels and amounts take
// roughly 25 columns of each line.
func (m ChartModel) barWidth() int {
	if m.Width > 0 && m.Width-25 < chartBarWidth {
		return max(m.Width-25, 10)
	}

	return chartBarWidth
}

type chartLoadedMsg struct {
	records []ledger.PaymentRecord
	err     error
}

func (m ChartModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		records, err := m.svc.Ledger(ctx)

		return chartLoadedMsg{records: records, err: err}
	}
}
