package submission

//go:generate go run go.uber.org/mock/mockgen -source=./submitter.go -destination=./mocks/submitter_mock.go -package=mocks

import (
	"context"
	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"

	"github.com/rs/zerolog/log"
)

// Submitter sends a validated reservation to whatever system books it.
type Submitter interface {
	Submit(ctx context.Context, req model.ReservationRequest) error
}

type logSubmitter struct{}

// NewLogSubmitter returns a Submitter that only logs the reservation it receives.
func NewLogSubmitter() Submitter {
	return &logSubmitter{}
}

func (s *logSubmitter) Submit(_ context.Context, req model.ReservationRequest) error {
	var payload dto.ReservationPayload
	payload.FromModel(req)

	log.Info().
		Str("name", payload.Name).
		Str("email", payload.Email).
		Str("type", payload.Type).
		Str("building", payload.Building).
		Str("room", payload.Room).
		Str("start", payload.Start).
		Str("end", payload.End).
		Msg("reservation submitted")

	return nil
}
