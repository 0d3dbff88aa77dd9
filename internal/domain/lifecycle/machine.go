// Package lifecycle provides the document lifecycle engine.
//
// Each stock-affecting document family owns a small state machine with an
// explicit transition table mapping (fromStatus, toStatus) to a ledger
// effect. Only the first transition into the family's stock-affecting
// status applies stock; leaving that status reverses it; every other
// transition — including re-saving the same status — is stock-neutral.
package lifecycle

import (
	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
)

// Effect is the ledger side effect of one status transition.
type Effect int

const (
	// EffectNone leaves stock untouched.
	EffectNone Effect = iota
	// EffectApply records the family's stock movements (goods in).
	EffectApply
	// EffectReverse emits compensating movements for a previously applied
	// transition.
	EffectReverse
)

// String implements fmt.Stringer for log output.
func (e Effect) String() string {
	switch e {
	case EffectApply:
		return "apply"
	case EffectReverse:
		return "reverse"
	default:
		return "none"
	}
}

// Transition is one (from, to) status pair.
type Transition struct {
	From entity.Status
	To   entity.Status
}

// Machine is the lifecycle state machine of one document family.
type Machine struct {
	family string
	table  map[Transition]Effect
}

// NewTargetMachine builds a machine whose only stock-affecting status is
// target: any transition into target applies stock, any transition out of
// target reverses it. Statuses are otherwise freely reorderable — the
// desktop client writes them directly.
func NewTargetMachine(family string, target entity.Status) *Machine {
	table := make(map[Transition]Effect, len(entity.KnownStatuses)*len(entity.KnownStatuses))
	for _, from := range entity.KnownStatuses {
		for _, to := range entity.KnownStatuses {
			effect := EffectNone
			switch {
			case from == to:
				// Re-saving the same status is always a no-op.
			case to == target:
				effect = EffectApply
			case from == target:
				effect = EffectReverse
			}
			table[Transition{From: from, To: to}] = effect
		}
	}
	return &Machine{family: family, table: table}
}

// Family returns the document family name the machine belongs to.
func (m *Machine) Family() string {
	return m.family
}

// Effect decides the ledger side effect of moving from one status to
// another. Unknown statuses are rejected before any write happens.
func (m *Machine) Effect(from, to entity.Status) (Effect, error) {
	if !entity.IsKnownStatus(from) {
		return EffectNone, apperror.NewValidation("unknown current status").
			WithDetail("family", m.family).
			WithDetail("status", string(from))
	}
	if !entity.IsKnownStatus(to) {
		return EffectNone, apperror.NewInvalidTransition(m.family, string(from), string(to))
	}
	return m.table[Transition{From: from, To: to}], nil
}

// Prebuilt machines for the stock-affecting families.

// SupplierOrderMachine applies stock when a supplier order is delivered.
func SupplierOrderMachine() *Machine {
	return NewTargetMachine("supplier_order", entity.StatusDelivered)
}

// PurchaseOrderMachine applies stock when a purchase order is delivered.
func PurchaseOrderMachine() *Machine {
	return NewTargetMachine("purchase_order", entity.StatusDelivered)
}

// CreditNoteMachine returns goods to stock when a credit note is confirmed.
func CreditNoteMachine() *Machine {
	return NewTargetMachine("credit_note", entity.StatusConfirmed)
}
