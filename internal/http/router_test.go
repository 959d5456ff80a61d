package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habipro/habipay/internal/api"
	"github.com/habipro/habipay/internal/auth"
	"github.com/habipro/habipay/internal/fixture"
	habiHttp "github.com/habipro/habipay/internal/http"
	authHandler "github.com/habipro/habipay/internal/http/auth"
	contractHandler "github.com/habipro/habipay/internal/http/contract"
	paymentHandler "github.com/habipro/habipay/internal/http/payment"
	"github.com/habipro/habipay/internal/ledger"
	"github.com/habipro/habipay/internal/payment"
)

const testSecret = "test-secret"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := fixture.Seed()
	router := habiHttp.New(
		contractHandler.NewHandler(store),
		paymentHandler.NewHandler(store),
		authHandler.NewHandler(store, testSecret),
		testSecret,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": "awa", "password": "habipro"})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/auth/login/", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)

	return out.Token
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/payments/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
}

func TestRouter_RejectsBadToken(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/contracts/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token not-a-jwt")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_Login_BadCredentials(t *testing.T) {
	srv := newServer(t)

	body, err := json.Marshal(map[string]string{"username": "awa", "password": "wrong"})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/auth/login/", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Full client-to-server pass: log in, resolve the lease, pay an unpaid
// month, and watch the refreshed ledger and the duplicate refusal on the
// second attempt.
func TestRouter_PaymentWorkflow(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv)

	client := api.NewClient(srv.URL+"/api", auth.StaticToken(token), 5*time.Second)
	svc := payment.NewService(client)
	ctx := context.Background()

	sel, err := svc.EligibleLeases(ctx)
	require.NoError(t, err)
	assert.True(t, sel.Auto())

	l := sel.Current()
	assert.Equal(t, int64(7), l.ID)
	assert.Equal(t, int64(350000), l.Rent)

	// Novembre is on the ledger as pending, which does not settle the month.
	result, err := svc.Submit(ctx, payment.SubmitParams{
		Lease:      l,
		MonthLabel: "Novembre 2025",
		Method:     ledger.MethodOrange,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^HP-[0-9a-f]{8}$`, result.Reference)
	require.NoError(t, ledger.CanSubmit(l.ID, "Décembre 2025", result.Ledger))
	assert.Error(t, ledger.CanSubmit(l.ID, "Novembre 2025", result.Ledger))

	// Same month again: the guard refuses before any request is made.
	_, err = svc.Submit(ctx, payment.SubmitParams{
		Lease:      l,
		MonthLabel: "Novembre 2025",
		Method:     ledger.MethodOrange,
	})

	var dup *ledger.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Novembre 2025", dup.Month)
}

// Bypassing the client-side guard shows the server enforcing the same
// rule with the field-keyed French error.
func TestRouter_ServerSideDuplicate(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv)

	client := api.NewClient(srv.URL+"/api", auth.StaticToken(token), 5*time.Second)
	ctx := context.Background()

	loc := int64(7)
	req := api.SubmitRequest{
		Tenant:        3,
		Property:      12,
		Location:      &loc,
		Amount:        350000,
		PaymentMonth:  "Octobre 2025",
		PaymentMethod: "mtn",
	}

	_, err := client.SubmitPayment(ctx, req)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Un paiement existe déjà pour Octobre 2025.", apiErr.FieldError("payment_month"))
}
