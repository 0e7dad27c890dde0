package order

import (
	"encoding/json"
	"errors"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
)

type State string

const (
	Idle             State = "IDLE"
	Validating       State = "VALIDATING"
	QuoteRequested   State = "QUOTE_REQUESTED"
	QuoteReceived    State = "QUOTE_RECEIVED"
	ConfirmRequested State = "CONFIRM_REQUESTED"
	Confirmed        State = "CONFIRMED"
	Failed           State = "ERROR"
)

var ErrInvalidTransition = errors.New("operation is not allowed in the current order state")

// Flow is the quote/confirm progress of a session. ErrorFrom is the state the
// flow failed in and the one Dismiss goes back to.
type Flow struct {
	State        State                 `json:"state"`
	ErrorFrom    State                 `json:"error_from,omitempty"`
	Error        *schema.ResponseError `json:"error,omitempty"`
	Quote        json.RawMessage       `json:"quote,omitempty"`
	Order        json.RawMessage       `json:"order,omitempty"`
	Distribution *Distribution         `json:"distribution,omitempty"`
}

func NewFlow() Flow {
	return Flow{State: Idle}
}

func (f *Flow) canQuote() bool {
	switch f.State {
	case Idle, Validating, QuoteRequested, QuoteReceived, Confirmed:
		return true
	}
	return false
}

func (f *Flow) canConfirm() bool {
	return f.State == QuoteReceived || f.State == ConfirmRequested
}

// Invalidate drops any quote once the form it was computed for has changed.
func (f *Flow) Invalidate() {
	if f.State == Idle && f.Error == nil {
		return
	}
	*f = NewFlow()
}
