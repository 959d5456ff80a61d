package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habipro/habipay/internal/api"
	"github.com/habipro/habipay/internal/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return api.NewClient(ts.URL, auth.StaticToken("test-token"), 5*time.Second)
}

func TestClient_AttachesAuthHeader(t *testing.T) {
	var gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Token test-token", gotAuth)
}

func TestClient_ListPayments_BareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/", r.URL.Path)
		w.Write([]byte(`[{"id": 1, "amount": "350000.00", "payment_month": "Novembre 2025"}]`))
	})

	raws, err := client.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Novembre 2025", raws[0].PaymentMonth)
}

func TestClient_ListContracts_ResultsWrapper(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contracts/", r.URL.Path)
		w.Write([]byte(`{"count": 1, "results": [{"id": 1, "amount": 350000, "status": "active"}]}`))
	})

	raws, err := client.ListContracts(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "active", raws[0].Status)
}

func TestClient_SubmitPayment_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "transaction_reference": "HP-A1B2C3D4", "status": "completed"}`))
	})

	receipt, err := client.SubmitPayment(context.Background(), api.SubmitRequest{
		Tenant:        8,
		Property:      4,
		Amount:        350000,
		PaymentMonth:  "Novembre 2025",
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, "HP-A1B2C3D4", receipt.Reference)
	assert.Equal(t, int64(42), receipt.PaymentID)
}

func TestClient_SubmitPayment_MonthConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"payment_month": ["Un paiement existe déjà pour Novembre 2025."]}`))
	})

	_, err := client.SubmitPayment(context.Background(), api.SubmitRequest{PaymentMonth: "Novembre 2025"})

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	// The field-keyed message must survive verbatim.
	assert.Equal(t, "Un paiement existe déjà pour Novembre 2025.", apiErr.FieldError("payment_month"))
	assert.Empty(t, apiErr.Detail)
}

func TestClient_SubmitPayment_DetailError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid token."}`))
	})

	_, err := client.SubmitPayment(context.Background(), api.SubmitRequest{})

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid token.", apiErr.Detail)
	assert.Empty(t, apiErr.FieldError("payment_month"))
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>upstream down</html>`))
	})

	_, err := client.ListPayments(context.Background())

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestClient_TokenSourceFailureIsPreFlight(t *testing.T) {
	called := false

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	client := api.NewClient(ts.URL, auth.StaticToken(""), time.Second)

	_, err := client.ListPayments(context.Background())
	assert.Error(t, err)
	assert.False(t, called)
}
