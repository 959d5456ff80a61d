package lease_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habipro/habipay/internal/lease"
)

func activeLease(id, rent int64, title, landlord string) lease.Lease {
	return lease.Lease{
		ID:            id,
		Rent:          rent,
		Status:        lease.StatusActive,
		PropertyTitle: title,
		LandlordName:  landlord,
	}
}

func TestSelect_NoActiveLease(t *testing.T) {
	tests := []struct {
		name   string
		leases []lease.Lease
	}{
		{name: "Empty", leases: nil},
		{name: "OnlyInactive", leases: []lease.Lease{
			{ID: 1, Status: lease.StatusDraft},
			{ID: 2, Status: lease.StatusTerminated},
			{ID: 3, Status: lease.StatusExpired},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := lease.Select(tt.leases)
			assert.ErrorIs(t, err, lease.ErrNoActiveLease)
			assert.Nil(t, sel)
		})
	}
}

func TestSelect_SingleActiveAutoSelects(t *testing.T) {
	leases := []lease.Lease{
		{ID: 1, Status: lease.StatusExpired, Rent: 99},
		activeLease(2, 350000, "Villa Cocody", "M. Kouassi"),
	}

	sel, err := lease.Select(leases)
	require.NoError(t, err)

	assert.True(t, sel.Auto())
	// The rent amount is exposed unchanged from the source lease.
	assert.Equal(t, int64(350000), sel.Current().Rent)
	assert.Equal(t, "Villa Cocody", sel.Current().PropertyTitle)
}

func TestSelect_MultipleRequireExplicitChoice(t *testing.T) {
	a := activeLease(1, 350000, "Villa Cocody", "M. Kouassi")
	b := activeLease(2, 180000, "Studio Plateau", "Mme Diallo")

	sel, err := lease.Select([]lease.Lease{a, b})
	require.NoError(t, err)
	assert.False(t, sel.Auto())
	require.Len(t, sel.Choices(), 2)

	// Switching the selection swaps every dependent field at once; nothing
	// from lease A may survive into the lease B view.
	require.NoError(t, sel.Choose(2))
	got := sel.Current()
	assert.Equal(t, int64(180000), got.Rent)
	assert.Equal(t, "Studio Plateau", got.PropertyTitle)
	assert.Equal(t, "Mme Diallo", got.LandlordName)

	require.NoError(t, sel.Choose(1))
	assert.Equal(t, a, sel.Current())
}

func TestSelection_ChooseUnknownLease(t *testing.T) {
	sel, err := lease.Select([]lease.Lease{activeLease(1, 100, "", "")})
	require.NoError(t, err)

	assert.Error(t, sel.Choose(42))
	// The previous selection is untouched.
	assert.Equal(t, int64(1), sel.Current().ID)
}
