package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/habipro/habipay/cmd/tui/internal/view"
	"github.com/habipro/habipay/internal/api"
	"github.com/habipro/habipay/internal/auth"
	"github.com/habipro/habipay/internal/config"
	"github.com/habipro/habipay/internal/payment"
)

type model struct {
	svc *payment.Service
	cfg *config.Config

	tokenWarning string

	currentView View

	payView     view.PayModel
	historyView view.HistoryModel
	chartView   view.ChartModel
}

type View int

const (
	ViewMenu    View = 0
	ViewPay     View = 1
	ViewHistory View = 2
	ViewChart   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	tokens := auth.StaticToken(cfg.API.Token)
	client := api.NewClient(cfg.API.URL, tokens, cfg.API.Timeout)
	svc := payment.NewService(client)

	warning := ""
	if exp, ok := auth.ExpiresAt(cfg.API.Token); ok && exp.Before(time.Now()) {
		warning = "Le jeton API a expiré; les requêtes seront refusées."
	}

	return model{
		svc:          svc,
		cfg:          cfg,
		tokenWarning: warning,
		currentView:  ViewMenu,
		payView:      view.NewPayModel(svc, cfg.Pay.AutocloseDelay),
		historyView:  view.NewHistoryModel(svc),
		chartView:    view.NewChartModel(svc, cfg.Ledger.Year),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPay
				m.payView = view.NewPayModel(m.svc, m.cfg.Pay.AutocloseDelay)

				return m, m.payView.Init()
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.svc)

				return m, m.historyView.Init()
			case "3":
				m.currentView = ViewChart
				m.chartView = view.NewChartModel(m.svc, m.cfg.Ledger.Year)

				return m, m.chartView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPay:
		var newModel tea.Model
		newModel, cmd = m.payView.Update(msg)
		m.payView = newModel.(view.PayModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewChart:
		var newModel tea.Model
		newModel, cmd = m.chartView.Update(msg)
		m.chartView = newModel.(view.ChartModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		menu := "HabiPay\n\n" +
			"1. Payer mon loyer\n" +
			"2. Historique des paiements\n" +
			"3. Loyers par mois\n\n" +
			"q. Quitter"

		if m.tokenWarning != "" {
			menu += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render(m.tokenWarning)
		}

		return lipgloss.NewStyle().Padding(2).Render(menu)
	case ViewPay:
		return m.payView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewChart:
		return m.chartView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
