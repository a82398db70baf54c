package luceneql

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kortschak/luceneql/internal/perr"
)

// Kind identifies the semantic category of a ParseError, mirroring
// internal/perr.Kind for callers who should never need to import an
// internal package to classify a failure.
type Kind = perr.Kind

const (
	UnexpectedToken     = perr.UnexpectedToken
	UnterminatedLiteral = perr.UnterminatedLiteral
	InvalidNumber       = perr.InvalidNumber
	ReservedFieldName   = perr.ReservedFieldName
	TrailingOperator    = perr.TrailingOperator
	TrailingInput       = perr.TrailingInput
	DepthExceeded       = perr.DepthExceeded
)

// ParseError is returned by Parse on any failure. Every ParseError carries
// a correlation ID: Parse is safe to call concurrently from many
// goroutines, so a bare byte offset is not enough on its own to tie a
// particular failure back to the structured debug log line that produced
// it in a shared log stream.
type ParseError struct {
	ID        uuid.UUID
	Kind      Kind
	Offset    int
	Construct string
	Expected  string
	Actual    string
	Message   string

	cause *perr.Error
}

func newParseError(e *perr.Error) *ParseError {
	return &ParseError{
		ID:        uuid.New(),
		Kind:      e.Kind,
		Offset:    e.Offset,
		Construct: e.Construct,
		Expected:  e.Expected,
		Actual:    e.Actual,
		Message:   e.Message,
		cause:     e,
	}
}

func (e *ParseError) Error() string {
	if e.Construct != "" {
		return fmt.Sprintf("luceneql: %s: %s (offset %d, parsing %s, id %s)",
			e.Kind, e.Message, e.Offset, e.Construct, e.ID)
	}
	return fmt.Sprintf("luceneql: %s: %s (offset %d, id %s)", e.Kind, e.Message, e.Offset, e.ID)
}

func (e *ParseError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause.Unwrap()
}
