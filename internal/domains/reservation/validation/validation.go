// Package validation checks a reservation snapshot and produces either a
// validated request or a field-keyed error set.
package validation

import (
	"fmt"
	"roomform/internal/domains/location"
	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/internal/domains/reservation/policy"
	"roomform/shared/constant"
	"roomform/shared/failure"
	"roomform/shared/timezone"
	"roomform/shared/validator"

	val "github.com/go-playground/validator/v10"
)

const (
	MessageStartRequired  = "start date required"
	MessageEndRequired    = "end date required"
	MessageEndBeforeStart = "end cannot precede start"

	messageStartPast           = "start date cannot be in the past"
	messageEndPast             = "end date cannot be in the past"
	messageConditionalRequired = "%s is required for %s reservations"
	messageConditionalHidden   = "%s must be empty for %s reservations"
)

func init() {
	err := validator.RegisterValidation("building", func(fl val.FieldLevel) bool {
		return location.IsBuilding(fl.Field().String())
	}, failure.KindInvalidEnum, "{field} must be one of the available buildings")
	if err != nil {
		panic(err)
	}

	err = validator.RegisterValidation("roomof", roomOf, failure.KindInvalidDependent, "{field} is not available in the selected building")
	if err != nil {
		panic(err)
	}
}

// roomOf checks that the room belongs to the building named by the tag param.
func roomOf(fl val.FieldLevel) bool {
	building, _, _, ok := fl.GetStructFieldOK2()
	if !ok {
		return false
	}

	return location.HasRoom(building.String(), fl.Field().String())
}

type Engine struct {
	clock timezone.Clock
}

// New returns an engine that judges past dates against clock. A nil clock
// uses timezone.Now.
func New(clock timezone.Clock) *Engine {
	if clock == nil {
		clock = timezone.Now
	}

	return &Engine{clock: clock}
}

// Validate returns the validated request, or a *failure.Failure whose Fields
// hold one error per offending field.
func (e *Engine) Validate(snapshot dto.Snapshot) (model.ReservationRequest, error) {
	if err := failure.Invalid(e.Check(snapshot)); err != nil {
		return model.ReservationRequest{}, err
	}

	return snapshot.ToModel(), nil
}

// Check runs every rule and returns the collected field errors. An empty
// result means the snapshot is valid.
func (e *Engine) Check(snapshot dto.Snapshot) failure.FieldErrors {
	fields := validator.ValidateFields(&snapshot)
	if fields == nil {
		fields = failure.FieldErrors{}
	}

	checkConditional(snapshot, fields)
	e.checkDates(snapshot, fields)

	return fields
}

func checkConditional(snapshot dto.Snapshot, fields failure.FieldErrors) {
	for _, field := range []model.Field{model.FieldEventName, model.FieldOtherDetail} {
		value := snapshot.Text(field)

		switch {
		case policy.Required(snapshot.Type, field) && value == constant.Empty:
			fields.Add(string(field), failure.KindMissingField, fmt.Sprintf(messageConditionalRequired, field, snapshot.Type))
		case !policy.Visible(snapshot.Type, field) && value != constant.Empty:
			fields.Add(string(field), failure.KindInvalidDependent, fmt.Sprintf(messageConditionalHidden, field, snapshot.Type))
		}
	}
}

// checkDates applies the ordered start/end block, then the past-date checks.
// A block error on end outranks a past-date error on the same field.
func (e *Engine) checkDates(snapshot dto.Snapshot, fields failure.FieldErrors) {
	start, end := string(model.FieldStart), string(model.FieldEnd)

	switch {
	case snapshot.Start == nil:
		fields.Set(start, failure.KindMissingField, MessageStartRequired)
	case snapshot.End == nil:
		fields.Set(end, failure.KindMissingField, MessageEndRequired)
	case snapshot.End.Before(*snapshot.Start):
		fields.Set(end, failure.KindInvalidOrder, MessageEndBeforeStart)
	}

	now := e.clock()

	if snapshot.Start != nil && snapshot.Start.Before(now) {
		fields.Add(start, failure.KindPastDate, messageStartPast)
	}

	if snapshot.End != nil && snapshot.End.Before(now) {
		fields.Add(end, failure.KindPastDate, messageEndPast)
	}
}
