package wizard

import (
	"fmt"
	"strings"
)

// StepKind tags what a step panel renders. Hosts switch on it to build the
// panel for each step when the wizard is constructed.
type StepKind int

const (
	KindInput  StepKind = iota // Free-form text input
	KindSelect                 // Pick one option from a fixed list
	KindReview                 // Read-only summary of shared data
)

// String returns the lowercase name of the kind.
func (k StepKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	case KindReview:
		return "review"
	default:
		return "unknown"
	}
}

// Step describes one page of a multi-step flow.
type Step struct {
	ID    string   // Stable identifier, used as the shared data key prefix by panels
	Title string   // Human-readable title shown in the header
	Kind  StepKind // Panel variant
}

// Status is the validity state a step panel reports for its step.
type Status int

const (
	StatusPending Status = iota
	StatusValid
	StatusInvalid
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "valid":
		return StatusValid, nil
	case "invalid":
		return StatusInvalid, nil
	default:
		return StatusPending, fmt.Errorf("invalid step status: %s", s)
	}
}

// MarshalText encodes the status by name so persisted drafts stay readable.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
