package dto

import (
	"roomform/internal/domains/reservation/model"
	"roomform/shared/constant"
	"roomform/shared/failure"
	"roomform/shared/timezone"
	"time"
)

// Snapshot is the live, possibly partial, state of a reservation form. Field
// level rules live in the tags; conditional and date rules are applied by the
// validation engine.
type Snapshot struct {
	Name        string     `json:"name"        validate:"required,min=4"`
	Email       string     `json:"email"       validate:"required,email"`
	Type        model.Type `json:"type"        validate:"required,oneof=Class Meeting Event Other"`
	EventName   string     `json:"eventName"`
	OtherDetail string     `json:"otherDetail"`
	Building    string     `json:"building"    validate:"required,building"`
	Room        string     `json:"room"        validate:"required,roomof=Building"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
}

// DefaultSnapshot returns the state a new or reset form starts from.
func DefaultSnapshot() Snapshot {
	return Snapshot{Type: model.DefaultType}
}

// Clone returns a deep copy; dates are not shared with the receiver.
func (s Snapshot) Clone() Snapshot {
	clone := s
	clone.Start = cloneTime(s.Start)
	clone.End = cloneTime(s.End)

	return clone
}

// Text returns the value of a text field, or "" for date fields.
func (s *Snapshot) Text(field model.Field) string {
	switch field {
	case model.FieldName:
		return s.Name
	case model.FieldEmail:
		return s.Email
	case model.FieldType:
		return string(s.Type)
	case model.FieldEventName:
		return s.EventName
	case model.FieldOtherDetail:
		return s.OtherDetail
	case model.FieldBuilding:
		return s.Building
	case model.FieldRoom:
		return s.Room
	default:
		return constant.Empty
	}
}

// SetText assigns a text field. It reports false for date or unknown fields.
func (s *Snapshot) SetText(field model.Field, value string) bool {
	switch field {
	case model.FieldName:
		s.Name = value
	case model.FieldEmail:
		s.Email = value
	case model.FieldType:
		s.Type = model.Type(value)
	case model.FieldEventName:
		s.EventName = value
	case model.FieldOtherDetail:
		s.OtherDetail = value
	case model.FieldBuilding:
		s.Building = value
	case model.FieldRoom:
		s.Room = value
	default:
		return false
	}

	return true
}

// Date returns the value of a date field, or nil.
func (s *Snapshot) Date(field model.Field) *time.Time {
	switch field {
	case model.FieldStart:
		return s.Start
	case model.FieldEnd:
		return s.End
	default:
		return nil
	}
}

// SetDate assigns a date field. It reports false for text or unknown fields.
func (s *Snapshot) SetDate(field model.Field, value *time.Time) bool {
	switch field {
	case model.FieldStart:
		s.Start = cloneTime(value)
	case model.FieldEnd:
		s.End = cloneTime(value)
	default:
		return false
	}

	return true
}

// ToModel converts a snapshot that has passed validation. Dates are normalized
// to UTC; callers must have checked that both are present.
func (s *Snapshot) ToModel() model.ReservationRequest {
	return model.ReservationRequest{
		Name:        s.Name,
		Email:       s.Email,
		Type:        s.Type,
		EventName:   s.EventName,
		OtherDetail: s.OtherDetail,
		Building:    s.Building,
		Room:        s.Room,
		Start:       timezone.Normalize(*s.Start),
		End:         timezone.Normalize(*s.End),
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	clone := *t

	return &clone
}

type FieldStatus string

const (
	FieldStatusPristine FieldStatus = "pristine"
	FieldStatusValid    FieldStatus = "valid"
	FieldStatusInvalid  FieldStatus = "invalid"
)

// FieldState is everything a rendering collaborator needs to draw one field.
type FieldState struct {
	Visible  bool                `json:"visible"`
	Required bool                `json:"required"`
	Enabled  bool                `json:"enabled"`
	Dirty    bool                `json:"dirty"`
	Status   FieldStatus         `json:"status"`
	Error    *failure.FieldError `json:"error,omitempty"`
	Options  []string            `json:"options,omitempty"`
}

type FormState struct {
	ID             string                     `json:"id,omitempty"`
	Values         Snapshot                   `json:"values"`
	Fields         map[model.Field]FieldState `json:"fields"`
	CanSubmit      bool                       `json:"canSubmit"`
	Submitting     bool                       `json:"submitting"`
	EndMinDateTime *time.Time                 `json:"endMinDateTime,omitempty"`
}

type SetFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=name email type eventName otherDetail building room start end"`
	Value any    `json:"value"`
}

// ReservationPayload is the collaborator-facing rendering of a validated request.
type ReservationPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	EventName   string `json:"eventName,omitempty"`
	OtherDetail string `json:"otherDetail,omitempty"`
	Building    string `json:"building"`
	Room        string `json:"room"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

func (p *ReservationPayload) FromModel(model model.ReservationRequest) {
	p.Name = model.Name
	p.Email = model.Email
	p.Type = string(model.Type)
	p.EventName = model.EventName
	p.OtherDetail = model.OtherDetail
	p.Building = model.Building
	p.Room = model.Room
	p.Start = timezone.Normalize(model.Start).Format(constant.DateFormat)
	p.End = timezone.Normalize(model.End).Format(constant.DateFormat)
}

type SubmissionResponse struct {
	ID          string             `json:"id"`
	Reservation ReservationPayload `json:"reservation"`
}

type LocationsResponse struct {
	Buildings []string `json:"buildings"`
}

type RoomsResponse struct {
	Building string   `json:"building"`
	Rooms    []string `json:"rooms"`
}
