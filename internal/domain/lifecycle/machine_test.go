package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/entity"
)

func TestSupplierOrderMachine_Effects(t *testing.T) {
	m := SupplierOrderMachine()

	tests := []struct {
		name string
		from entity.Status
		to   entity.Status
		want Effect
	}{
		{"pending to confirmed is neutral", entity.StatusPending, entity.StatusConfirmed, EffectNone},
		{"confirmed to delivered applies", entity.StatusConfirmed, entity.StatusDelivered, EffectApply},
		{"pending straight to delivered applies", entity.StatusPending, entity.StatusDelivered, EffectApply},
		{"delivered re-saved is a no-op", entity.StatusDelivered, entity.StatusDelivered, EffectNone},
		{"delivered to cancelled reverses", entity.StatusDelivered, entity.StatusCancelled, EffectReverse},
		{"delivered back to pending reverses", entity.StatusDelivered, entity.StatusPending, EffectReverse},
		{"pending to cancelled is neutral", entity.StatusPending, entity.StatusCancelled, EffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Effect(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreditNoteMachine_TargetsConfirmed(t *testing.T) {
	m := CreditNoteMachine()

	apply, err := m.Effect(entity.StatusPending, entity.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, EffectApply, apply)

	// Delivered is not this family's stock-affecting status.
	none, err := m.Effect(entity.StatusPending, entity.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, EffectNone, none)

	reverse, err := m.Effect(entity.StatusConfirmed, entity.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, EffectReverse, reverse)
}

func TestMachine_IdempotentRepeatedTarget(t *testing.T) {
	// Property: entering the target status twice in a row applies once.
	m := PurchaseOrderMachine()

	first, err := m.Effect(entity.StatusConfirmed, entity.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, EffectApply, first)

	second, err := m.Effect(entity.StatusDelivered, entity.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, EffectNone, second)
}

func TestMachine_RejectsUnknownStatus(t *testing.T) {
	m := SupplierOrderMachine()

	_, err := m.Effect(entity.StatusPending, entity.Status("Expédiée"))
	assert.Error(t, err)

	_, err = m.Effect(entity.Status(""), entity.StatusDelivered)
	assert.Error(t, err)
}
