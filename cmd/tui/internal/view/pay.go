package view

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/habipro/habipay/internal/api"
	"github.com/habipro/habipay/internal/ledger"
	"github.com/habipro/habipay/internal/lease"
	"github.com/habipro/habipay/internal/payment"
)

// payTokenSeq is process-wide, so a submission token is never reused even
// across sessions. A reply from a session abandoned mid-flight can then
// never match the token of a later one.
var payTokenSeq atomic.Int64

type payState int

const (
	payStateLoading payState = iota
	payStateNoLease
	payStateReady
	payStateSubmitting
	payStateSuccess
	payStateFailed
)

type PayModel struct {
	CommonModel
	svc       *payment.Service
	autoclose time.Duration

	state payState
	err   error

	// Issued from payTokenSeq on every submission; replies carrying any
	// other token are from an abandoned attempt and get dropped.
	reqToken int64

	selection *lease.Selection
	records   []ledger.PaymentRecord

	form       *huh.Form
	formLease  int64
	formMonth  string
	formMethod string
	formAuto   bool

	spinner   spinner.Model
	reference string
}

func NewPayModel(svc *payment.Service, autoclose time.Duration) PayModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return PayModel{
		svc:       svc,
		autoclose: autoclose,
		state:     payStateLoading,
		spinner:   s,
	}
}

func (m PayModel) Title() string { return "Payer mon loyer" }

func (m PayModel) ShortHelp() string {
	switch m.state {
	case payStateReady:
		return "Naviguer dans le formulaire | Esc: retour"
	case payStateSubmitting:
		return "Paiement en cours..."
	case payStateFailed:
		return "Entrée: réessayer | Esc: retour"
	}

	return "Esc: retour"
}

func (m PayModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m PayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Esc closes the modal from every state, including mid-submission.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.state != payStateReady || m.form == nil {
			return m, Back
		}
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size)
	}

	switch m.state {
	case payStateLoading:
		return m.updateLoading(msg)
	case payStateNoLease:
		return m, nil
	case payStateReady:
		return m.updateReady(msg)
	case payStateSubmitting:
		return m.updateSubmitting(msg)
	case payStateSuccess:
		return m.updateSuccess(msg)
	case payStateFailed:
		return m.updateFailed(msg)
	}

	return m, nil
}

func (m PayModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if loaded, ok := msg.(payLoadedMsg); ok {
		if loaded.err != nil {
			if errors.Is(loaded.err, lease.ErrNoActiveLease) {
				m.state = payStateNoLease
				return m, nil
			}

			m.state = payStateFailed
			m.err = loaded.err

			return m, nil
		}

		m.selection = loaded.selection
		m.records = loaded.records
		m.err = nil
		m.formLease = m.selection.Current().ID
		m.formMonth = ""
		m.formMethod = ""
		m.form = m.buildForm()
		m.state = payStateReady

		return m, m.form.Init()
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m PayModel) updateReady(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.submitFromForm()
}

func (m PayModel) submitFromForm() (tea.Model, tea.Cmd) {
	if !m.selection.Auto() {
		if err := m.selection.Choose(m.formLease); err != nil {
			m.state = payStateFailed
			m.err = err

			return m, nil
		}
	}

	// Quick check against the ledger already on screen; Submit re-fetches
	// and runs it again right before the request goes out. A refusal here
	// keeps the session open with a fresh form so the user can pick
	// another month without a reload.
	if err := ledger.CanSubmit(m.selection.Current().ID, m.formMonth, m.records); err != nil {
		m.err = err
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	m.state = payStateSubmitting
	m.err = nil
	m.reqToken = payTokenSeq.Add(1)

	return m, tea.Batch(m.spinner.Tick, m.submitCmd(m.reqToken))
}

func (m PayModel) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(paySubmittedMsg); ok {
		if result.token != m.reqToken {
			return m, nil
		}

		if result.err != nil {
			m.state = payStateFailed
			m.err = result.err

			return m, nil
		}

		m.state = payStateSuccess
		m.reference = result.result.Reference

		if result.result.Ledger != nil {
			m.records = result.result.Ledger
		}

		token := m.reqToken

		return m, tea.Tick(m.autoclose, func(time.Time) tea.Msg {
			return payAutocloseMsg{token: token}
		})
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m PayModel) updateSuccess(msg tea.Msg) (tea.Model, tea.Cmd) {
	if auto, ok := msg.(payAutocloseMsg); ok && auto.token == m.reqToken {
		return m, Back
	}

	return m, nil
}

func (m PayModel) updateFailed(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "r":
			m.state = payStateLoading
			m.err = nil

			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
	}

	return m, nil
}

func (m PayModel) buildForm() *huh.Form {
	var fields []huh.Field

	if !m.selection.Auto() {
		choices := m.selection.Choices()
		opts := make([]huh.Option[int64], 0, len(choices))
		for _, l := range choices {
			label := fmt.Sprintf("%s (%s/mois)", l.PropertyTitle, FormatCurrency(l.Rent))
			opts = append(opts, huh.NewOption(label, l.ID))
		}

		fields = append(fields, huh.NewSelect[int64]().
			Key("lease").
			Title("Bail").
			Options(opts...).
			Value(&m.formLease))
	}

	months := MonthOptions(time.Now())
	monthOpts := make([]huh.Option[string], 0, len(months))
	for _, label := range months {
		monthOpts = append(monthOpts, huh.NewOption(label, label))
	}

	methods := []ledger.Method{
		ledger.MethodOrange,
		ledger.MethodMTN,
		ledger.MethodMoov,
		ledger.MethodCard,
		ledger.MethodTransfer,
	}
	methodOpts := make([]huh.Option[string], 0, len(methods))
	for _, method := range methods {
		methodOpts = append(methodOpts, huh.NewOption(FormatMethod(method), string(method)))
	}

	fields = append(fields,
		huh.NewSelect[string]().
			Key("month").
			Title("Mois à payer").
			Options(monthOpts...).
			Value(&m.formMonth),

		huh.NewSelect[string]().
			Key("method").
			Title("Moyen de paiement").
			Options(methodOpts...).
			Value(&m.formMethod),

		huh.NewConfirm().
			Key("auto").
			Title("Activer le paiement automatique ?").
			Affirmative("Oui").
			Negative("Non").
			Value(&m.formAuto),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
}

func (m PayModel) View() string {
	switch m.state {
	case payStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Chargement du bail et de l'historique...", m.spinner.View()),
		)

	case payStateNoLease:
		return lipgloss.NewStyle().Padding(1).Render(
			"Aucun bail actif.\n\nLe paiement du loyer nécessite un contrat de location actif.",
		)

	case payStateReady:
		header := fmt.Sprintf("Loyer: %s\n%s",
			FormatCurrency(m.selection.Current().Rent),
			lipgloss.NewStyle().Faint(true).Render(m.selection.Current().PropertyTitle),
		)

		parts := []string{header, ""}
		if m.err != nil {
			parts = append(parts,
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(errorMessage(m.err)),
				"",
			)
		}

		parts = append(parts, m.form.View())

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, parts...),
		)

	case payStateSubmitting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Paiement de %s en cours...", m.spinner.View(), m.formMonth),
		)

	case payStateSuccess:
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Paiement effectué !")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header,
				"",
				fmt.Sprintf("%s · %s", m.formMonth, FormatCurrency(m.selection.Current().Rent)),
				fmt.Sprintf("Référence: %s", m.reference),
			),
		)

	case payStateFailed:
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(errorMessage(m.err)),
		)
	}

	return ""
}

// errorMessage keeps the platform's own validation wording when it is
// available; everything else falls back to the plain error text.
func errorMessage(err error) string {
	var dup *ledger.DuplicateError
	if errors.As(err, &dup) {
		return fmt.Sprintf("Le loyer de %s est déjà payé.", dup.Month)
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.FieldError("payment_month"); msg != "" {
			return msg
		}

		if apiErr.Detail != "" {
			return apiErr.Detail
		}
	}

	return fmt.Sprintf("Erreur: %v", err)
}

// Messages

type payLoadedMsg struct {
	selection *lease.Selection
	records   []ledger.PaymentRecord
	err       error
}

func (m PayModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		selection, err := m.svc.EligibleLeases(ctx)
		if err != nil {
			return payLoadedMsg{err: err}
		}

		records, err := m.svc.Ledger(ctx)
		if err != nil {
			return payLoadedMsg{err: err}
		}

		return payLoadedMsg{selection: selection, records: records}
	}
}

type paySubmittedMsg struct {
	token  int64
	result *payment.SubmitResult
	err    error
}

type payAutocloseMsg struct {
	token int64
}

func (m PayModel) submitCmd(token int64) tea.Cmd {
	params := payment.SubmitParams{
		Lease:      m.selection.Current(),
		MonthLabel: m.formMonth,
		Method:     ledger.Method(m.formMethod),
		AutoPay:    m.formAuto,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		result, err := m.svc.Submit(ctx, params)

		return paySubmittedMsg{token: token, result: result, err: err}
	}
}
