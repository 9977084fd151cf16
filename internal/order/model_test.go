package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("laundry")
	assert.NoError(t, err)
	assert.Equal(t, KindLaundry, k)

	k, err = ParseKind("ironing")
	assert.NoError(t, err)
	assert.Equal(t, KindIroning, k)

	_, err = ParseKind("Laundry")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_Statuses(t *testing.T) {
	assert.Equal(t, LaundryPending, KindLaundry.InitialStatus())
	assert.Equal(t, IroningPending, KindIroning.InitialStatus())

	assert.True(t, KindLaundry.ValidStatus(LaundryInProgress))
	assert.False(t, KindLaundry.ValidStatus(IroningReady))
	assert.False(t, KindIroning.ValidStatus(LaundryPending), "status values are case sensitive")
	assert.True(t, KindIroning.ValidStatus(IroningDelivered))

	statuses := KindLaundry.Statuses()
	statuses[0] = "mutated"
	assert.Equal(t, LaundryPending, KindLaundry.InitialStatus())
}
