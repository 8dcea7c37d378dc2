package validation_test

import (
	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/internal/domains/reservation/validation"
	"roomform/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 3, 10, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return now
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)

	return &t
}

func validSnapshot() dto.Snapshot {
	return dto.Snapshot{
		Name:     "Anna",
		Email:    "a@b.com",
		Type:     model.TypeClass,
		Building: "Hall 1",
		Room:     "Room 01",
		Start:    at(24 * time.Hour),
		End:      at(25 * time.Hour),
	}
}

func fieldErrors(t *testing.T, err error) failure.FieldErrors {
	t.Helper()
	require.Error(t, err)

	fields := failure.GetFields(err)
	require.NotNil(t, fields)

	return fields
}

func TestValidate_ValidRequest(t *testing.T) {
	engine := validation.New(fixedClock)

	req, err := engine.Validate(validSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "Anna", req.Name)
	assert.Equal(t, model.TypeClass, req.Type)
	assert.Equal(t, "Room 01", req.Room)
	assert.Equal(t, time.UTC, req.Start.Location())
	assert.True(t, req.End.After(req.Start))
}

func TestValidate_NormalizesDatesToUTC(t *testing.T) {
	engine := validation.New(fixedClock)

	loc := time.FixedZone("BRT", -3*60*60)
	snapshot := validSnapshot()
	start := now.Add(48 * time.Hour).In(loc)
	end := start.Add(time.Hour)
	snapshot.Start, snapshot.End = &start, &end

	req, err := engine.Validate(snapshot)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, req.Start.Location())
	assert.True(t, req.Start.Equal(start))
	assert.Equal(t, time.UTC, req.End.Location())
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *dto.Snapshot)
		field  string
		kind   failure.Kind
	}{
		{name: "missing name", mutate: func(s *dto.Snapshot) { s.Name = "" }, field: "name", kind: failure.KindMissingField},
		{name: "short name", mutate: func(s *dto.Snapshot) { s.Name = "Ann" }, field: "name", kind: failure.KindTooShort},
		{name: "missing email", mutate: func(s *dto.Snapshot) { s.Email = "" }, field: "email", kind: failure.KindMissingField},
		{name: "bad email", mutate: func(s *dto.Snapshot) { s.Email = "a@" }, field: "email", kind: failure.KindInvalidFormat},
		{name: "missing type", mutate: func(s *dto.Snapshot) { s.Type = "" }, field: "type", kind: failure.KindMissingField},
		{name: "unknown type", mutate: func(s *dto.Snapshot) { s.Type = "Party" }, field: "type", kind: failure.KindInvalidEnum},
		{name: "missing building", mutate: func(s *dto.Snapshot) { s.Building = "" }, field: "building", kind: failure.KindMissingField},
		{name: "unknown building", mutate: func(s *dto.Snapshot) { s.Building = "Hall 3" }, field: "building", kind: failure.KindInvalidEnum},
		{name: "missing room", mutate: func(s *dto.Snapshot) { s.Room = "" }, field: "room", kind: failure.KindMissingField},
		{
			name:   "room outside building",
			mutate: func(s *dto.Snapshot) { s.Building, s.Room = "Hall 2", "Room 16" },
			field:  "room",
			kind:   failure.KindInvalidDependent,
		},
		{
			name:   "event without event name",
			mutate: func(s *dto.Snapshot) { s.Type = model.TypeEvent },
			field:  "eventName",
			kind:   failure.KindMissingField,
		},
		{
			name:   "other without detail",
			mutate: func(s *dto.Snapshot) { s.Type = model.TypeOther },
			field:  "otherDetail",
			kind:   failure.KindMissingField,
		},
		{
			name:   "event name on a class",
			mutate: func(s *dto.Snapshot) { s.EventName = "Launch" },
			field:  "eventName",
			kind:   failure.KindInvalidDependent,
		},
		{
			name:   "other detail on an event",
			mutate: func(s *dto.Snapshot) { s.Type, s.EventName, s.OtherDetail = model.TypeEvent, "Launch", "x" },
			field:  "otherDetail",
			kind:   failure.KindInvalidDependent,
		},
		{
			name:   "start in the past",
			mutate: func(s *dto.Snapshot) { s.Start = at(-time.Minute) },
			field:  "start",
			kind:   failure.KindPastDate,
		},
		{
			name:   "both dates in the past",
			mutate: func(s *dto.Snapshot) { s.Start, s.End = at(-2*time.Hour), at(-time.Hour) },
			field:  "end",
			kind:   failure.KindPastDate,
		},
	}

	engine := validation.New(fixedClock)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := validSnapshot()
			tt.mutate(&snapshot)

			_, err := engine.Validate(snapshot)
			fields := fieldErrors(t, err)

			require.Contains(t, fields, tt.field)
			assert.Equal(t, tt.kind, fields[tt.field].Kind)
			assert.NotEmpty(t, fields[tt.field].Message)
		})
	}
}

func TestValidate_ConditionalFieldsSatisfied(t *testing.T) {
	engine := validation.New(fixedClock)

	event := validSnapshot()
	event.Type, event.EventName = model.TypeEvent, "Product launch"
	_, err := engine.Validate(event)
	assert.NoError(t, err)

	other := validSnapshot()
	other.Type, other.OtherDetail = model.TypeOther, "Thesis defense"
	_, err = engine.Validate(other)
	assert.NoError(t, err)

	meeting := validSnapshot()
	meeting.Type = model.TypeMeeting
	_, err = engine.Validate(meeting)
	assert.NoError(t, err)
}

func TestValidate_AllFieldErrorsReported(t *testing.T) {
	engine := validation.New(fixedClock)

	snapshot := dto.DefaultSnapshot()
	snapshot.Type = model.TypeEvent

	fields := engine.Check(snapshot)

	for _, field := range []string{"name", "email", "eventName", "building", "room", "start"} {
		assert.Contains(t, fields, field)
	}

	assert.NotContains(t, fields, "type")
	assert.NotContains(t, fields, "otherDetail")
	assert.NotContains(t, fields, "end", "end is not checked while start is missing")
}

func TestValidate_DatePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		start     *time.Time
		end       *time.Time
		wantStart *failure.FieldError
		wantEnd   *failure.FieldError
	}{
		{
			name:      "start missing skips end",
			start:     nil,
			end:       nil,
			wantStart: &failure.FieldError{Kind: failure.KindMissingField, Message: validation.MessageStartRequired},
		},
		{
			name:      "start missing with end before nothing",
			start:     nil,
			end:       at(time.Hour),
			wantStart: &failure.FieldError{Kind: failure.KindMissingField, Message: validation.MessageStartRequired},
		},
		{
			name:    "end missing",
			start:   at(time.Hour),
			end:     nil,
			wantEnd: &failure.FieldError{Kind: failure.KindMissingField, Message: validation.MessageEndRequired},
		},
		{
			name:    "end precedes start",
			start:   at(2 * time.Hour),
			end:     at(time.Hour),
			wantEnd: &failure.FieldError{Kind: failure.KindInvalidOrder, Message: validation.MessageEndBeforeStart},
		},
		{
			name:    "order outranks past on end",
			start:   at(time.Hour),
			end:     at(-time.Hour),
			wantEnd: &failure.FieldError{Kind: failure.KindInvalidOrder, Message: validation.MessageEndBeforeStart},
		},
		{
			name:  "equal dates are accepted",
			start: at(time.Hour),
			end:   at(time.Hour),
		},
	}

	engine := validation.New(fixedClock)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := validSnapshot()
			snapshot.Start, snapshot.End = tt.start, tt.end

			fields := engine.Check(snapshot)

			if tt.wantStart != nil {
				assert.Equal(t, *tt.wantStart, fields["start"])
			} else {
				assert.NotContains(t, fields, "start")
			}

			if tt.wantEnd != nil {
				assert.Equal(t, *tt.wantEnd, fields["end"])
			} else {
				assert.NotContains(t, fields, "end")
			}
		})
	}
}

func TestValidate_OrderingRejectsIffEndBeforeStart(t *testing.T) {
	engine := validation.New(fixedClock)

	offsets := []time.Duration{time.Hour, 90 * time.Minute, 2 * time.Hour, 26 * time.Hour}

	for _, startOffset := range offsets {
		for _, endOffset := range offsets {
			snapshot := validSnapshot()
			snapshot.Start, snapshot.End = at(startOffset), at(endOffset)

			_, err := engine.Validate(snapshot)

			if endOffset < startOffset {
				fields := fieldErrors(t, err)
				assert.Equal(t, failure.KindInvalidOrder, fields["end"].Kind)
			} else {
				assert.NoError(t, err, "start %s end %s", startOffset, endOffset)
			}
		}
	}
}

func TestValidate_Scenarios(t *testing.T) {
	engine := validation.New(fixedClock)

	t.Run("A: complete class reservation", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Start, snapshot.End = at(time.Hour), at(2*time.Hour)

		_, err := engine.Validate(snapshot)
		assert.NoError(t, err)
	})

	t.Run("B: event without a name", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Type, snapshot.EventName = model.TypeEvent, ""

		fields := fieldErrors(t, func() error { _, err := engine.Validate(snapshot); return err }())
		assert.Equal(t, failure.KindMissingField, fields["eventName"].Kind)
	})

	t.Run("C: end an hour before start", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Start, snapshot.End = at(3*time.Hour), at(2*time.Hour)

		fields := fieldErrors(t, func() error { _, err := engine.Validate(snapshot); return err }())
		assert.Equal(t, failure.KindInvalidOrder, fields["end"].Kind)
	})

	t.Run("D: sixteenth room of hall 2", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Building, snapshot.Room = "Hall 2", "Room 16"

		fields := fieldErrors(t, func() error { _, err := engine.Validate(snapshot); return err }())
		assert.Equal(t, failure.KindInvalidDependent, fields["room"].Kind)

		snapshot.Room = "Room 15"
		_, err := engine.Validate(snapshot)
		assert.NoError(t, err)
	})
}

func TestNew_DefaultClock(t *testing.T) {
	engine := validation.New(nil)

	snapshot := validSnapshot()
	past := time.Now().Add(-time.Hour)
	snapshot.Start = &past

	fields := engine.Check(snapshot)
	assert.Equal(t, failure.KindPastDate, fields["start"].Kind)
}
