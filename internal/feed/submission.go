package feed

import (
	"errors"

	"go.uber.org/atomic"
)

// ErrInFlight is returned when a create is submitted while another one is
// still waiting for the server.
var ErrInFlight = errors.New("a submission is already in flight")

// Submission allows a single create request at a time, the same way the
// frontend disables its submit button.
type Submission struct {
	inFlight atomic.Bool
}

// Begin claims the submission slot. The returned func releases it.
func (s *Submission) Begin() (func(), error) {
	if !s.inFlight.CAS(false, true) {
		return nil, ErrInFlight
	}

	return func() { s.inFlight.Store(false) }, nil
}

// InFlight reports whether the submit control is currently disabled.
func (s *Submission) InFlight() bool {
	return s.inFlight.Load()
}
