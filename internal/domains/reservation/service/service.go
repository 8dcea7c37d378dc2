package service

import (
	"context"
	"errors"
	"fmt"
	"roomform/config"
	"roomform/infras/metrics"
	"roomform/infras/otel"
	"roomform/internal/domains/reservation/form"
	"roomform/internal/domains/reservation/model"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/internal/domains/reservation/submission"
	"roomform/internal/domains/reservation/validation"
	"roomform/shared/constant"
	"roomform/shared/failure"
	"roomform/shared/timezone"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Form manages independent reservation form sessions.
type Form interface {
	Open(ctx context.Context) (dto.FormState, error)
	State(ctx context.Context, id string) (dto.FormState, error)
	SetField(ctx context.Context, id string, req dto.SetFieldRequest) (dto.FormState, error)
	Reset(ctx context.Context, id string) (dto.FormState, error)
	Submit(ctx context.Context, id string) (dto.SubmissionResponse, error)
	Close(ctx context.Context, id string) error
}

// DefaultIdleTimeout applies when Form.IdleTimeoutSeconds is unset.
const DefaultIdleTimeout = 30 * time.Minute

type session struct {
	mu         sync.Mutex
	controller *form.Controller
	lastAccess atomic.Int64
}

func (sess *session) touch(at time.Time) {
	sess.lastAccess.Store(at.UnixNano())
}

func (sess *session) idle(at time.Time) time.Duration {
	return at.Sub(time.Unix(0, sess.lastAccess.Load()))
}

type serviceImpl struct {
	cfg       *config.Config
	otel      otel.Otel
	metrics   metrics.Metrics
	submitter submission.Submitter
	clock     timezone.Clock

	mu       sync.RWMutex
	sessions map[string]*session
}

func New(cfg *config.Config, otel otel.Otel, metrics metrics.Metrics, submitter submission.Submitter) Form {
	return NewWithClock(cfg, otel, metrics, submitter, timezone.Now)
}

// NewWithClock is New with the clock past dates are judged against.
func NewWithClock(cfg *config.Config, otel otel.Otel, metrics metrics.Metrics, submitter submission.Submitter, clock timezone.Clock) Form {
	return &serviceImpl{
		cfg:       cfg,
		otel:      otel,
		metrics:   metrics,
		submitter: submitter,
		clock:     clock,
		sessions:  map[string]*session{},
	}
}

func (s *serviceImpl) Open(ctx context.Context) (res dto.FormState, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Open")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	s.sweep(now)

	if limit := s.cfg.Form.MaxSessions; limit > 0 && len(s.sessions) >= limit {
		log.Warn().Int("limit", limit).Msg("form session limit reached")

		return res, failure.Conflict("too many open form sessions") // nolint:wrapcheck
	}

	id := uuid.NewString()
	sess := &session{controller: form.New(validation.New(s.clock))}
	sess.touch(now)
	s.sessions[id] = sess
	s.metrics.SessionOpened()

	scope.SetAttribute(constant.OtelSessionAttributeKey, id)
	log.Info().Str("session", id).Msg("form session opened")

	return stateOf(id, sess.controller), nil
}

func (s *serviceImpl) State(ctx context.Context, id string) (res dto.FormState, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".State")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelSessionAttributeKey, id)

	sess, err := s.get(id)
	if err != nil {
		return res, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return stateOf(id, sess.controller), nil
}

func (s *serviceImpl) SetField(ctx context.Context, id string, req dto.SetFieldRequest) (res dto.FormState, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetField")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.OtelSessionAttributeKey: id,
		constant.OtelFieldAttributeKey:   req.Field,
	})

	sess, err := s.get(id)
	if err != nil {
		return res, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	err = sess.controller.SetField(model.Field(req.Field), req.Value)
	s.metrics.FieldUpdated(req.Field, err == nil)

	if err != nil {
		log.Error().Err(err).Str("session", id).Str("field", req.Field).Msg("failed to set form field")

		return res, fmt.Errorf("failed to set form field: %w", err)
	}

	return stateOf(id, sess.controller), nil
}

func (s *serviceImpl) Reset(ctx context.Context, id string) (res dto.FormState, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reset")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelSessionAttributeKey, id)

	sess, err := s.get(id)
	if err != nil {
		return res, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.controller.ResetAll()
	log.Info().Str("session", id).Msg("form session reset")

	return stateOf(id, sess.controller), nil
}

// Submit validates the session and hands the reservation to the submitter.
// While the submitter runs, field writes and a second submit are refused with a
// conflict; Reset stays allowed and makes the late completion a no-op.
func (s *serviceImpl) Submit(ctx context.Context, id string) (res dto.SubmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelSessionAttributeKey, id)

	sess, err := s.get(id)
	if err != nil {
		return res, err
	}

	started := time.Now()

	sess.mu.Lock()
	req, ticket, err := sess.controller.BeginSubmit()
	sess.mu.Unlock()

	if err != nil {
		s.metrics.SubmissionFinished(rejectionOutcome(err), time.Since(started))
		log.Warn().Err(err).Str("session", id).Msg("reservation not submittable")

		return res, err //nolint:wrapcheck
	}

	submitErr := s.dispatch(ctx, req)

	sess.mu.Lock()
	current := sess.controller.CompleteSubmit(ticket, submitErr)
	sess.mu.Unlock()
	sess.touch(s.clock())

	if submitErr != nil {
		s.metrics.SubmissionFinished(metrics.OutcomeFailed, time.Since(started))
		log.Error().Err(submitErr).Str("session", id).Msg("failed to submit reservation")

		return res, fmt.Errorf("failed to submit reservation: %w", submitErr)
	}

	s.metrics.SubmissionFinished(metrics.OutcomeSubmitted, time.Since(started))
	log.Info().Str("session", id).Bool("reset", current).Msg("reservation submitted")

	res.ID = id
	res.Reservation.FromModel(req)

	return res, nil
}

func (s *serviceImpl) dispatch(ctx context.Context, req model.ReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSubmissionScopeName, constant.OtelSubmissionScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"reservation.building": req.Building,
		"reservation.room":     req.Room,
		"reservation.type":     string(req.Type),
	})

	return s.submitter.Submit(ctx, req) //nolint:wrapcheck
}

func (s *serviceImpl) Close(ctx context.Context, id string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Close")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelSessionAttributeKey, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return failure.NotFound("form session not found") // nolint:wrapcheck
	}

	delete(s.sessions, id)
	s.metrics.SessionClosed()
	log.Info().Str("session", id).Msg("form session closed")

	return nil
}

func (s *serviceImpl) get(id string) (*session, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, failure.BadRequestFromString("invalid form session id") // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, failure.NotFound("form session not found") // nolint:wrapcheck
	}

	now := s.clock()
	if s.expired(sess, now) {
		s.evict(id)

		return nil, failure.NotFound("form session not found") // nolint:wrapcheck
	}

	sess.touch(now)

	return sess, nil
}

func (s *serviceImpl) idleTimeout() time.Duration {
	if seconds := s.cfg.Form.IdleTimeoutSeconds; seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return DefaultIdleTimeout
}

// expired reports whether sess has been idle past the timeout. A session with
// a submission in flight never expires. Callers hold s.mu.
func (s *serviceImpl) expired(sess *session, now time.Time) bool {
	if sess.idle(now) < s.idleTimeout() {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return !sess.controller.Submitting()
}

// sweep evicts every expired session. Callers hold s.mu.
func (s *serviceImpl) sweep(now time.Time) {
	evicted := 0

	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			s.evict(id)
			evicted++
		}
	}

	if evicted > 0 {
		log.Info().Int("evicted", evicted).Int("open", len(s.sessions)).Msg("idle form sessions evicted")
	}
}

// evict removes id. Callers hold s.mu.
func (s *serviceImpl) evict(id string) {
	delete(s.sessions, id)
	s.metrics.SessionClosed()
	log.Debug().Str("session", id).Msg("form session expired")
}

func rejectionOutcome(err error) string {
	if errors.Is(err, submission.ErrInFlight) {
		return metrics.OutcomeInFlight
	}

	return metrics.OutcomeInvalid
}

func stateOf(id string, controller *form.Controller) dto.FormState {
	state := controller.State()
	state.ID = id

	return state
}
