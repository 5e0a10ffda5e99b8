package xbrl

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ParseError reports a malformed token stream.
type ParseError struct {
	Line   int
	Column int
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xbrl: parse error at line %d, column %d (offset %d): %v", e.Line, e.Column, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StructuralKind classifies a StructuralError.
type StructuralKind int

const (
	// UnexpectedEnd is an end token while no element is open.
	UnexpectedEnd StructuralKind = iota + 1
	// MismatchedEnd is an end token naming an element other than the open one.
	MismatchedEnd
	// Unterminated is end of input with elements still open.
	Unterminated
)

func (k StructuralKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "unexpected end element"
	case MismatchedEnd:
		return "mismatched end element"
	case Unterminated:
		return "unterminated element"
	default:
		return "unknown structural error"
	}
}

// StructuralError reports a token stream that does not form a tree.
type StructuralError struct {
	Kind StructuralKind
	// Name is the element named by the offending end token, or the innermost
	// open element for Unterminated.
	Name string
	// Open is the element that was open when a MismatchedEnd was seen.
	Open string
	// Depth is the number of open elements when the error was detected.
	Depth  int
	Line   int
	Column int
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case MismatchedEnd:
		return fmt.Sprintf("xbrl: %s </%s> at line %d, column %d: open element is <%s>", e.Kind, e.Name, e.Line, e.Column, e.Open)
	case Unterminated:
		return fmt.Sprintf("xbrl: %s <%s> at end of input (%d open)", e.Kind, e.Name, e.Depth)
	default:
		return fmt.Sprintf("xbrl: %s </%s> at line %d, column %d", e.Kind, e.Name, e.Line, e.Column)
	}
}

// IsMalformed reports whether err came from a malformed document, as opposed
// to an I/O failure while reading it.
func IsMalformed(err error) bool {
	var pe *ParseError
	var se *StructuralError
	return errors.As(err, &pe) || errors.As(err, &se)
}
