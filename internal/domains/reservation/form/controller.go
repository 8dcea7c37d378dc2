// Package form owns one reservation form session: the live snapshot, the
// dirty flags and the dependent-field side effects of every edit.
package form

import (
	"context"
	"fmt"
	"roomform/internal/domains/location"
	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/internal/domains/reservation/policy"
	"roomform/internal/domains/reservation/submission"
	"roomform/internal/domains/reservation/validation"
	"roomform/shared/constant"
	"roomform/shared/failure"
	"roomform/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Controller is not safe for concurrent use; callers serialise access.
type Controller struct {
	engine   *validation.Engine
	snapshot dto.Snapshot
	dirty    map[model.Field]bool
	errors   failure.FieldErrors
	gate     submission.Gate
}

// New returns a controller holding the default snapshot. A nil engine uses
// the wall clock.
func New(engine *validation.Engine) *Controller {
	if engine == nil {
		engine = validation.New(nil)
	}

	c := &Controller{engine: engine}
	c.reset()

	return c
}

func (c *Controller) reset() {
	c.snapshot = dto.DefaultSnapshot()
	c.dirty = map[model.Field]bool{}
	c.errors = c.engine.Check(c.snapshot)
}

// SetField writes value into field, applies the fields that depend on it and
// re-validates. A rejected write leaves the controller untouched. Writes are
// refused while a submission is in flight.
func (c *Controller) SetField(field model.Field, value any) error {
	if !field.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown field %q", field)) // nolint:wrapcheck
	}

	if c.gate.InFlight() {
		return submission.ErrInFlight
	}

	if !c.enabled(field) {
		return failure.BadRequestFromString(fmt.Sprintf("field %s is not editable", field)) // nolint:wrapcheck
	}

	next := c.snapshot.Clone()

	if field.IsDate() {
		date, err := toDate(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}

		next.SetDate(field, date)
	} else {
		text, err := toText(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}

		next.SetText(field, text)
	}

	cleared := c.propagate(field, &next)

	c.snapshot = next
	c.dirty[field] = true
	c.errors = c.engine.Check(c.snapshot)

	log.Debug().
		Str("field", string(field)).
		Interface("cleared", cleared).
		Int("errors", len(c.errors)).
		Msg("form field updated")

	return nil
}

// propagate applies the declared dependencies of field to next and returns
// the fields it cleared.
func (c *Controller) propagate(field model.Field, next *dto.Snapshot) []model.Field {
	var cleared []model.Field

	switch field {
	case model.FieldType:
		cleared = append(cleared, policy.Transition(c.snapshot.Type, next.Type, next)...)
	case model.FieldBuilding:
		next.Room = constant.Empty
		cleared = append(cleared, model.FieldRoom)
	}

	return append(cleared, policy.Enforce(next.Type, next)...)
}

// enabled reports whether the user may currently edit field.
func (c *Controller) enabled(field model.Field) bool {
	switch {
	case policy.IsConditional(field):
		return policy.Visible(c.snapshot.Type, field)
	case field == model.FieldRoom:
		return c.snapshot.Building != constant.Empty
	default:
		return true
	}
}

// ResetAll restores the default snapshot, forgets every dirty flag and drops
// any in-flight submission. Calling it repeatedly has no further effect.
func (c *Controller) ResetAll() {
	c.reset()
	c.gate.Clear()
}

// Snapshot returns a copy of the current values.
func (c *Controller) Snapshot() dto.Snapshot {
	return c.snapshot.Clone()
}

// Errors returns the field errors of the last validation run.
func (c *Controller) Errors() failure.FieldErrors {
	return c.errors.Clone()
}

func (c *Controller) IsDirty(field model.Field) bool {
	return c.dirty[field]
}

// CanSubmit reports whether the current snapshot is valid right now and no
// submission is in flight. Past-date rules depend on the clock, so the
// snapshot is re-checked on every call.
func (c *Controller) CanSubmit() bool {
	return c.gate.CanSubmit(failure.Invalid(c.engine.Check(c.snapshot)))
}

// Revalidate refreshes the error set against the current clock.
func (c *Controller) Revalidate() {
	c.errors = c.engine.Check(c.snapshot)
}

func (c *Controller) Submitting() bool {
	return c.gate.InFlight()
}

// Options returns the selectable values of a choice field, or nil for free
// text and date fields.
func (c *Controller) Options(field model.Field) []string {
	switch field {
	case model.FieldType:
		types := model.Types()
		options := make([]string, 0, len(types))

		for _, t := range types {
			options = append(options, string(t))
		}

		return options
	case model.FieldBuilding:
		return location.Buildings()
	case model.FieldRoom:
		return location.RoomsFor(c.snapshot.Building)
	default:
		return nil
	}
}

// EndLowerBound is the earliest end a date picker should offer: the current
// start, or nil when no start is set.
func (c *Controller) EndLowerBound() *time.Time {
	if c.snapshot.Start == nil {
		return nil
	}

	bound := *c.snapshot.Start

	return &bound
}

// FieldState describes how field should be rendered.
func (c *Controller) FieldState(field model.Field) dto.FieldState {
	state := dto.FieldState{
		Visible:  policy.Visible(c.snapshot.Type, field),
		Required: policy.Required(c.snapshot.Type, field),
		Enabled:  c.enabled(field),
		Dirty:    c.dirty[field],
		Status:   dto.FieldStatusPristine,
		Options:  c.Options(field),
	}

	fieldErr, invalid := c.errors[string(field)]
	if invalid {
		state.Error = &fieldErr
	}

	if state.Dirty {
		state.Status = dto.FieldStatusValid
		if invalid {
			state.Status = dto.FieldStatusInvalid
		}
	}

	return state
}

// State is the full presentation view of the form. It revalidates first so
// errors and CanSubmit agree with the clock.
func (c *Controller) State() dto.FormState {
	c.Revalidate()

	fields := make(map[model.Field]dto.FieldState, len(model.Fields()))
	for _, field := range model.Fields() {
		fields[field] = c.FieldState(field)
	}

	return dto.FormState{
		Values:         c.Snapshot(),
		Fields:         fields,
		CanSubmit:      c.gate.CanSubmit(failure.Invalid(c.errors)),
		Submitting:     c.Submitting(),
		EndMinDateTime: c.EndLowerBound(),
	}
}

// BeginSubmit runs the authoritative validation and locks the gate. The
// returned ticket must be passed to CompleteSubmit.
func (c *Controller) BeginSubmit() (model.ReservationRequest, submission.Ticket, error) {
	req, err := c.engine.Validate(c.snapshot)
	if err != nil {
		c.errors = failure.GetFields(err).Clone()

		return req, 0, err
	}

	ticket, err := c.gate.Lock()
	if err != nil {
		return req, 0, err //nolint:wrapcheck
	}

	return req, ticket, nil
}

// CompleteSubmit releases the gate for ticket. On success the submitted
// snapshot is discarded. It reports false when the ticket was invalidated by
// ResetAll, in which case nothing changes.
func (c *Controller) CompleteSubmit(ticket submission.Ticket, submitErr error) bool {
	if !c.gate.Unlock(ticket) {
		log.Warn().Msg("ignoring completion of a cleared submission")

		return false
	}

	if submitErr == nil {
		c.reset()
	}

	return true
}

// Submit validates the form and hands the request to submitter, holding the
// gate for the duration of the call.
func (c *Controller) Submit(ctx context.Context, submitter submission.Submitter) (model.ReservationRequest, error) {
	req, ticket, err := c.BeginSubmit()
	if err != nil {
		return req, err
	}

	err = submitter.Submit(ctx, req)
	c.CompleteSubmit(ticket, err)

	if err != nil {
		log.Error().Err(err).Msg("failed to submit reservation")

		return req, fmt.Errorf("failed to submit reservation: %w", err)
	}

	return req, nil
}

func toText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return constant.Empty, nil
	case string:
		return v, nil
	case model.Type:
		return string(v), nil
	default:
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("expected text, got %T", value)) // nolint:wrapcheck
	}
}

func toDate(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		if v == constant.Empty {
			return nil, nil
		}

		t, err := timezone.Parse(constant.DateFormat, v)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("expected an RFC 3339 timestamp, got %q", v)) // nolint:wrapcheck
		}

		return &t, nil
	default:
		return nil, failure.BadRequestFromString(fmt.Sprintf("expected a timestamp, got %T", value)) // nolint:wrapcheck
	}
}
