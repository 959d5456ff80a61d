package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/habipro/habipay/internal/ledger"
	"github.com/habipro/habipay/internal/payment"
)

type HistoryModel struct {
	CommonModel
	svc *payment.Service

	table   table.Model
	records []ledger.PaymentRecord
	loading bool
	err     error
}

func NewHistoryModel(svc *payment.Service) HistoryModel {
	columns := []table.Column{
		{Title: "Mois", Width: 16},
		{Title: "Date", Width: 12},
		{Title: "Montant", Width: 14},
		{Title: "Moyen", Width: 16},
		{Title: "Statut", Width: 8},
		{Title: "Référence", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return HistoryModel{
		svc:     svc,
		table:   t,
		loading: true,
	}
}

func (m HistoryModel) Title() string { return "Historique des paiements" }

func (m HistoryModel) ShortHelp() string {
	return "Esc: retour | r: actualiser"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.records = msg.records
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.SetSize(msg)
		m.table.SetHeight(m.Height - 10)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement de l'historique...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorMessage(m.err))
	}

	summary := ledger.Summarize(m.records)
	header := fmt.Sprintf(
		"Payé: %s · Impayé: %s · Taux de recouvrement: %d%%",
		FormatCurrency(summary.TotalPaid),
		FormatCurrency(summary.TotalDue),
		summary.CollectionRate,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))

	for _, rec := range m.records {
		date := "—"
		if rec.Date != nil {
			date = FormatDate(*rec.Date)
		}

		status := "Impayé"
		if rec.Paid() {
			status = "Payé"
		}

		rows = append(rows, table.Row{
			rec.MonthLabel,
			date,
			FormatCurrency(rec.Amount),
			FormatMethod(rec.Method),
			status,
			rec.Reference,
		})
	}

	m.table.SetRows(rows)
}

type historyLoadedMsg struct {
	records []ledger.PaymentRecord
	err     error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		records, err := m.svc.Ledger(ctx)

		return historyLoadedMsg{records: records, err: err}
	}
}
