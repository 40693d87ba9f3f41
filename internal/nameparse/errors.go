package nameparse

import (
	"fmt"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// Reason classifies a parse failure.
type Reason string

const (
	ReasonEmptyInput  Reason = "EmptyInput"
	ReasonUnparseable Reason = "Unparseable"
)

// ParseError is returned by Parse. It unwraps to domain.ErrEmptyInput or
// domain.ErrUnparseable so callers can use errors.Is.
type ParseError struct {
	Reason Reason
	Input  string
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonEmptyInput:
		return "parse name: empty input"
	default:
		return fmt.Sprintf("parse name: no name part found in %q", e.Input)
	}
}

func (e *ParseError) Unwrap() error {
	if e.Reason == ReasonEmptyInput {
		return domain.ErrEmptyInput
	}
	return domain.ErrUnparseable
}
