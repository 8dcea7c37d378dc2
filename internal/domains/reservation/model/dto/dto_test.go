package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"
)

func TestDefaultSnapshot(t *testing.T) {
	snapshot := dto.DefaultSnapshot()

	assert.Equal(t, model.TypeClass, snapshot.Type)
	assert.Empty(t, snapshot.Name)
	assert.Nil(t, snapshot.Start)
	assert.Nil(t, snapshot.End)
}

func TestSnapshot_CloneDoesNotShareDates(t *testing.T) {
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	snapshot := dto.Snapshot{Name: "Anna", Start: &start}

	clone := snapshot.Clone()
	*clone.Start = start.Add(time.Hour)

	assert.True(t, snapshot.Start.Equal(start))
	assert.Equal(t, "Anna", clone.Name)
}

func TestSnapshot_Accessors(t *testing.T) {
	var snapshot dto.Snapshot

	for _, field := range model.Fields() {
		if field.IsDate() {
			assert.False(t, snapshot.SetText(field, "x"), field)
			assert.True(t, snapshot.SetDate(field, nil), field)

			continue
		}

		assert.True(t, snapshot.SetText(field, "value"), field)
		assert.Equal(t, "value", snapshot.Text(field), field)
		assert.False(t, snapshot.SetDate(field, nil), field)
	}

	assert.False(t, snapshot.SetText("phone", "x"))
	assert.Equal(t, "", snapshot.Text("phone"))

	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	snapshot.SetDate(model.FieldStart, &start)

	start = start.Add(time.Hour)
	assert.Equal(t, 9, snapshot.Date(model.FieldStart).Hour(), "SetDate copies its argument")
	assert.Nil(t, snapshot.Date(model.FieldEnd))
}

func TestSnapshot_ToModelNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, loc)
	end := start.Add(time.Hour)

	snapshot := dto.Snapshot{Name: "Anna", Type: model.TypeMeeting, Start: &start, End: &end}
	req := snapshot.ToModel()

	assert.Equal(t, time.UTC, req.Start.Location())
	assert.Equal(t, 12, req.Start.Hour())
	assert.Equal(t, 13, req.End.Hour())
	assert.Equal(t, model.TypeMeeting, req.Type)
}

func TestReservationPayload_FromModel(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	var payload dto.ReservationPayload
	payload.FromModel(model.ReservationRequest{
		Name:      "Anna",
		Email:     "a@b.com",
		Type:      model.TypeEvent,
		EventName: "Launch",
		Building:  "Hall 2",
		Room:      "Room 15",
		Start:     time.Date(2030, 1, 1, 9, 0, 0, 0, loc),
		End:       time.Date(2030, 1, 1, 10, 0, 0, 0, loc),
	})

	assert.Equal(t, "Event", payload.Type)
	assert.Equal(t, "Launch", payload.EventName)
	assert.Equal(t, "2030-01-01T12:00:00Z", payload.Start)
	assert.Equal(t, "2030-01-01T13:00:00Z", payload.End)
}
