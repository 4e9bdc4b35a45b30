package models

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors. Every failure in the core is one of these (possibly wrapped);
// handlers map them onto HTTP statuses, nothing ever panics.
var (
	ErrInvalidPhoneFormat     = errors.New("phone number must be in international format: +[country code][number]")
	ErrVoterExists            = errors.New("voter already registered")
	ErrVoterNotFound          = errors.New("voter not found")
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrCandidateNameRequired  = errors.New("candidate name is required")
	ErrAlreadyVotedInPosition = errors.New("already voted in this position")
	ErrAdminNotFound          = errors.New("admin user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrSessionNotFound        = errors.New("session not found")
	ErrInvalidTimezone        = errors.New("unknown timezone name")
	ErrInvalidTimestamp       = errors.New("malformed timestamp")
)

// GateClosedError reports why casting a ballot is currently refused. At is the
// relevant boundary: the start time for a not-yet-started election, the end
// time for an ended one, nil when disabled.
type GateClosedError struct {
	State ElectionState
	At    *time.Time
}

func (e *GateClosedError) Error() string {
	switch e.State {
	case ElectionDisabled:
		return "election is not active"
	case ElectionNotStarted:
		if e.At != nil {
			return fmt.Sprintf("election has not started yet, voting opens at %s", e.At.Format(time.RFC3339))
		}
		return "election has not started yet"
	case ElectionEnded:
		if e.At != nil {
			return fmt.Sprintf("election ended at %s", e.At.Format(time.RFC3339))
		}
		return "election has ended"
	default:
		return "election is closed"
	}
}

// IsGateClosed unwraps err into a GateClosedError if there is one.
func IsGateClosed(err error) (*GateClosedError, bool) {
	var gateErr *GateClosedError
	if errors.As(err, &gateErr) {
		return gateErr, true
	}
	return nil, false
}
