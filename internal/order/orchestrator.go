package order

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"github.com/rs/zerolog"
)

const (
	QuoteFailedMessage   = "Failed to generate quote. Please try again."
	ConfirmFailedMessage = "Failed to create order. Please try again."
)

// Backend submits formatted requests to the marketplace and returns the raw
// quote or order document.
type Backend interface {
	DistanceQuote(ctx context.Context, request DistanceQuoteRequest) (json.RawMessage, error)
	HourlyQuote(ctx context.Context, request HourlyQuoteRequest) (json.RawMessage, error)
	DistanceConfirm(ctx context.Context, request DistanceConfirmRequest) (json.RawMessage, error)
	HourlyConfirm(ctx context.Context, request HourlyConfirmRequest) (json.RawMessage, error)
}

type TransitionObserver interface {
	IncFlowTransition(state string)
}

type Orchestrator struct {
	backend  Backend
	observer TransitionObserver
	now      func() time.Time
}

func NewOrchestrator(backend Backend, observer TransitionObserver) *Orchestrator {
	return &Orchestrator{
		backend:  backend,
		observer: observer,
		now:      time.Now,
	}
}

// RequestQuote validates the form and asks the marketplace for a quote.
// A flow stuck in QUOTE_REQUESTED (after a dismissed error) resumes without
// validating again. Failures are recorded on the flow and returned.
func (o *Orchestrator) RequestQuote(ctx context.Context, log *zerolog.Logger, s *Session) error {
	if !s.Flow.canQuote() {
		return ErrInvalidTransition
	}

	if s.Flow.State != QuoteRequested {
		s.Flow = NewFlow()
		o.transition(log, s, Validating)

		if err := Validate(s.Form); err != nil {
			o.fail(log, s, err)
			return err
		}

		o.transition(log, s, QuoteRequested)
	}

	var (
		quote json.RawMessage
		err   error
	)

	if s.Form.TripType().IsHourly() {
		quote, err = o.backend.HourlyQuote(ctx, NewHourlyQuoteRequest(s.Form))
	} else {
		quote, err = o.backend.DistanceQuote(ctx, NewDistanceQuoteRequest(s.Form))
	}

	if err != nil {
		described := schema.Describe(err, QuoteFailedMessage)
		o.fail(log, s, described)
		return described
	}

	s.Flow.Quote = quote
	o.transition(log, s, QuoteReceived)

	return nil
}

// Confirm submits the quoted order with its distribution target. An invalid
// target is rejected before the flow moves.
func (o *Orchestrator) Confirm(ctx context.Context, log *zerolog.Logger, s *Session, distribution *Distribution) error {
	if !s.Flow.canConfirm() {
		return ErrInvalidTransition
	}

	if distribution == nil {
		distribution = s.Flow.Distribution
	}
	if distribution == nil {
		defaults := DefaultDistribution()
		distribution = &defaults
	}

	if err := distribution.Validate(); err != nil {
		return err
	}

	target := withDistribution(*distribution)
	s.Flow.Distribution = &target
	o.transition(log, s, ConfirmRequested)

	var (
		order json.RawMessage
		err   error
	)

	if s.Form.TripType().IsHourly() {
		order, err = o.backend.HourlyConfirm(ctx, NewHourlyConfirmRequest(s.Form, target))
	} else {
		order, err = o.backend.DistanceConfirm(ctx, NewDistanceConfirmRequest(s.Form, target))
	}

	if err != nil {
		described := schema.Describe(err, ConfirmFailedMessage)
		o.fail(log, s, described)
		return described
	}

	s.Form = NewForm(s.Form.VendorID, o.now())
	s.Flow = Flow{Order: order}
	o.transition(log, s, Confirmed)

	return nil
}

func (o *Orchestrator) Dismiss(log *zerolog.Logger, s *Session) error {
	if s.Flow.State != Failed {
		return ErrInvalidTransition
	}

	from := s.Flow.ErrorFrom
	s.Flow.Error = nil
	s.Flow.ErrorFrom = ""
	o.transition(log, s, from)

	return nil
}

func (o *Orchestrator) fail(log *zerolog.Logger, s *Session, err *schema.ResponseError) {
	log.Warn().
		Str("label", "order-flow").
		Str("sessionId", s.ID).
		Str("code", string(err.Code)).
		Str("reason", err.Reason).
		Msg(err.Message)

	s.Flow.ErrorFrom = s.Flow.State
	s.Flow.Error = err
	o.transition(log, s, Failed)
}

func (o *Orchestrator) transition(log *zerolog.Logger, s *Session, to State) {
	log.Debug().
		Str("label", "order-flow").
		Str("sessionId", s.ID).
		Str("from", string(s.Flow.State)).
		Str("to", string(to)).
		Send()

	s.Flow.State = to

	if o.observer != nil {
		o.observer.IncFlowTransition(string(to))
	}
}
