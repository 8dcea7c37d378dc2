// Package policy decides which conditional fields a reservation type exposes.
//
// The state is the reservation type itself. Class and Meeting expose no
// conditional field, Event exposes eventName and Other exposes otherDetail.
// Any state can be re-entered; leaving a state clears the fields it exposed.
package policy

import (
	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/shared/constant"
	"slices"
)

type rule struct {
	field    model.Field
	activeIn model.Type
}

var rules = []rule{
	{field: model.FieldEventName, activeIn: model.TypeEvent},
	{field: model.FieldOtherDetail, activeIn: model.TypeOther},
}

// IsConditional reports whether field only exists for some reservation types.
func IsConditional(field model.Field) bool {
	return slices.ContainsFunc(rules, func(r rule) bool { return r.field == field })
}

// Visible reports whether field is shown for the reservation type.
func Visible(t model.Type, field model.Field) bool {
	for _, r := range rules {
		if r.field == field {
			return r.activeIn == t
		}
	}

	return true
}

// Required reports whether field must be filled for the reservation type.
func Required(t model.Type, field model.Field) bool {
	return Visible(t, field)
}

// Active returns the conditional fields exposed by t.
func Active(t model.Type) []model.Field {
	var active []model.Field

	for _, r := range rules {
		if r.activeIn == t {
			active = append(active, r.field)
		}
	}

	return active
}

// Inactive returns the conditional fields hidden by t.
func Inactive(t model.Type) []model.Field {
	var inactive []model.Field

	for _, r := range rules {
		if r.activeIn != t {
			inactive = append(inactive, r.field)
		}
	}

	return inactive
}

// Transition moves the snapshot from one type to another, clearing every field
// exposed by from that to does not expose. It returns the fields it cleared.
func Transition(from, to model.Type, snapshot *dto.Snapshot) []model.Field {
	var cleared []model.Field

	for _, r := range rules {
		if r.activeIn == from && r.activeIn != to {
			snapshot.SetText(r.field, constant.Empty)
			cleared = append(cleared, r.field)
		}
	}

	return cleared
}

// Enforce forces every field hidden by t to be empty and returns the fields
// that held a value.
func Enforce(t model.Type, snapshot *dto.Snapshot) []model.Field {
	var cleared []model.Field

	for _, field := range Inactive(t) {
		if snapshot.Text(field) != constant.Empty {
			snapshot.SetText(field, constant.Empty)
			cleared = append(cleared, field)
		}
	}

	return cleared
}
