package contact

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ResetAfter is how long the success message stays before the form
// returns to idle.
const ResetAfter = 5 * time.Second

// ErrSubmit wraps failures reported by a Submitter.
var ErrSubmit = errors.New("contact: submission failed")

type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is the form as shown to the visitor.
type State struct {
	Form   Form
	Errors FieldErrors
	Status Status
	SentAt time.Time
}

// Submit validates the form and hands it to sub. Invalid input returns
// FieldErrors without calling sub. A filled honeypot reports success and
// drops the submission. On success the fields are cleared; on failure they
// are kept and the error wraps ErrSubmit.
func (s *State) Submit(ctx context.Context, sub Submitter, now time.Time) error {
	s.Errors = nil
	if s.Form.IsBot() {
		s.succeed(now)
		return nil
	}
	if errs := s.Form.Validate(); errs != nil {
		s.Errors = errs
		s.Status = StatusIdle
		return errs
	}

	s.Status = StatusSending
	if err := sub.Submit(ctx, s.Form.Trimmed()); err != nil {
		s.Status = StatusError
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	s.succeed(now)
	return nil
}

// StatusAt returns the status as of now: a success older than resetAfter
// has reverted to idle.
func (s *State) StatusAt(now time.Time, resetAfter time.Duration) Status {
	if s.Status == StatusSuccess && !s.SentAt.IsZero() && now.Sub(s.SentAt) >= resetAfter {
		return StatusIdle
	}
	return s.Status
}

// ResetIn returns the time left before a success reverts to idle.
func (s *State) ResetIn(now time.Time, resetAfter time.Duration) time.Duration {
	if s.StatusAt(now, resetAfter) != StatusSuccess {
		return 0
	}
	return resetAfter - now.Sub(s.SentAt)
}

func (s *State) succeed(now time.Time) {
	s.Form = Form{}
	s.Status = StatusSuccess
	s.SentAt = now
}
