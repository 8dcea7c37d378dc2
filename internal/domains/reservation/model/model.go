package model

import (
	"slices"
	"time"
)

// Type is the kind of reservation. It drives which optional fields are required.
type Type string

const (
	TypeClass   Type = "Class"
	TypeMeeting Type = "Meeting"
	TypeEvent   Type = "Event"
	TypeOther   Type = "Other"

	DefaultType = TypeClass
)

var types = []Type{TypeClass, TypeMeeting, TypeEvent, TypeOther}

// Types returns every reservation type in display order.
func Types() []Type {
	return slices.Clone(types)
}

func (t Type) Valid() bool {
	return slices.Contains(types, t)
}

// Field names a form field. Values match the json names used on the wire.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldType        Field = "type"
	FieldEventName   Field = "eventName"
	FieldOtherDetail Field = "otherDetail"
	FieldBuilding    Field = "building"
	FieldRoom        Field = "room"
	FieldStart       Field = "start"
	FieldEnd         Field = "end"
)

var fields = []Field{
	FieldName,
	FieldEmail,
	FieldType,
	FieldEventName,
	FieldOtherDetail,
	FieldStart,
	FieldEnd,
	FieldBuilding,
	FieldRoom,
}

// Fields returns every form field in display order.
func Fields() []Field {
	return slices.Clone(fields)
}

func (f Field) Valid() bool {
	return slices.Contains(fields, f)
}

// IsDate reports whether the field holds a timestamp.
func (f Field) IsDate() bool {
	return f == FieldStart || f == FieldEnd
}

// ReservationRequest is a fully validated reservation, ready to be handed to a
// submission collaborator. Start and End are absolute UTC instants.
type ReservationRequest struct {
	Name        string
	Email       string
	Type        Type
	EventName   string
	OtherDetail string
	Building    string
	Room        string
	Start       time.Time
	End         time.Time
}
