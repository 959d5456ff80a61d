// Package fixture is the in-memory backing store for the development
// server. It serves wire shapes matching the HabiPro platform API so the
// client can be exercised end to end without a real deployment.
package fixture

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Contract is the wire shape of a lease contract as the platform serves
// it: decimal amounts as strings, dates as YYYY-MM-DD.
type Contract struct {
	ID              int64   `json:"id"`
	Tenant          int64   `json:"tenant"`
	Property        int64   `json:"property"`
	Amount          string  `json:"amount"`
	Status          string  `json:"status"`
	PropertyTitle   string  `json:"property_title"`
	PropertyAddress string  `json:"property_address"`
	OwnerName       string  `json:"owner_name"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
}

// Payment is the wire shape of a payment record.
type Payment struct {
	ID                   int64  `json:"id"`
	Location             *int64 `json:"location"`
	Amount               int64  `json:"amount"`
	PaymentMonth         string `json:"payment_month"`
	PaymentDate          string `json:"payment_date"`
	PaymentMethod        string `json:"payment_method"`
	Status               string `json:"status"`
	TransactionReference string `json:"transaction_reference"`
	AutoPaymentEnabled   bool   `json:"auto_payment_enabled"`
	PropertyTitle        string `json:"property_title"`
	PropertyAddress      string `json:"property_address"`
}

// DuplicateMonthError is returned by AddPayment when a completed payment
// already covers the (location, month) pair. The message matches the
// platform's French validation error so the client sees the same thing it
// would in production.
type DuplicateMonthError struct {
	Month string
}

func (e *DuplicateMonthError) Error() string {
	return fmt.Sprintf("Un paiement existe déjà pour %s.", e.Month)
}

type Store struct {
	mu        sync.Mutex
	contracts []Contract
	payments  []Payment
	nextID    int64
	users     map[string]string
}

func NewStore() *Store {
	return &Store{nextID: 1, users: map[string]string{}}
}

// Seed loads the demo tenant: one active lease plus a terminated one, and
// a few months of payment history on the active lease.
func Seed() *Store {
	s := NewStore()
	s.users["awa"] = "habipro"

	end := "2024-12-31"
	s.contracts = []Contract{
		{
			ID:              7,
			Tenant:          3,
			Property:        12,
			Amount:          "350000.00",
			Status:          "active",
			PropertyTitle:   "Villa Cocody",
			PropertyAddress: "Rue des Jardins, Cocody, Abidjan",
			OwnerName:       "M. Kouassi",
			StartDate:       "2025-01-01",
		},
		{
			ID:              4,
			Tenant:          3,
			Property:        9,
			Amount:          "200000.00",
			Status:          "terminated",
			PropertyTitle:   "Studio Plateau",
			PropertyAddress: "Avenue Chardy, Plateau, Abidjan",
			OwnerName:       "Mme Diabaté",
			StartDate:       "2024-01-01",
			EndDate:         &end,
		},
	}

	loc := int64(7)
	s.payments = []Payment{
		{
			ID:                   1,
			Location:             &loc,
			Amount:               350000,
			PaymentMonth:         "Septembre 2025",
			PaymentDate:          "2025-09-03T10:12:00Z",
			PaymentMethod:        "orange",
			Status:               "completed",
			TransactionReference: "HP-8d1f20aa",
			PropertyTitle:        "Villa Cocody",
			PropertyAddress:      "Rue des Jardins, Cocody, Abidjan",
		},
		{
			ID:                   2,
			Location:             &loc,
			Amount:               350000,
			PaymentMonth:         "Octobre 2025",
			PaymentDate:          "2025-10-02T08:40:00Z",
			PaymentMethod:        "mtn",
			Status:               "completed",
			TransactionReference: "HP-31bc77e0",
			PropertyTitle:        "Villa Cocody",
			PropertyAddress:      "Rue des Jardins, Cocody, Abidjan",
		},
		{
			ID:              3,
			Location:        &loc,
			Amount:          350000,
			PaymentMonth:    "Novembre 2025",
			PaymentMethod:   "orange",
			Status:          "pending",
			PropertyTitle:   "Villa Cocody",
			PropertyAddress: "Rue des Jardins, Cocody, Abidjan",
		},
	}
	s.nextID = 4

	return s
}

// Authenticate checks the demo credentials.
func (s *Store) Authenticate(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	want, ok := s.users[username]

	return ok && want == password
}

func (s *Store) Contracts() []Contract {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Contract, len(s.contracts))
	copy(out, s.contracts)

	return out
}

func (s *Store) Payments() []Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Payment, len(s.payments))
	copy(out, s.payments)

	return out
}

// AddPayment records a payment. Completed payments are unique per
// (location, month) pair; a second one for the same pair is refused with a
// *DuplicateMonthError. The store assigns the identifier, timestamp and
// transaction reference.
func (s *Store) AddPayment(p Payment) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Status == "completed" && p.Location != nil {
		for _, existing := range s.payments {
			if existing.Status != "completed" || existing.Location == nil {
				continue
			}

			if *existing.Location == *p.Location && strings.EqualFold(existing.PaymentMonth, p.PaymentMonth) {
				return Payment{}, &DuplicateMonthError{Month: p.PaymentMonth}
			}
		}
	}

	p.ID = s.nextID
	s.nextID++
	p.PaymentDate = time.Now().UTC().Format(time.RFC3339)
	p.TransactionReference = "HP-" + uuid.NewString()[:8]

	if p.Location != nil {
		for _, c := range s.contracts {
			if c.ID == *p.Location {
				p.PropertyTitle = c.PropertyTitle
				p.PropertyAddress = c.PropertyAddress

				break
			}
		}
	}

	s.payments = append(s.payments, p)

	return p, nil
}
