package stealth

import (
	"errors"
	"fmt"

	"github.com/smallyu/go-stealth/internal/crypto/curves"
	"github.com/smallyu/go-stealth/internal/crypto/derive"
)

// Decode errors. Every Parse function returns an *Error wrapping one of
// these, so errors.Is works through the wrapper.
var (
	ErrInvalidEncoding    = curves.ErrInvalidEncoding
	ErrNonCanonicalScalar = curves.ErrNonCanonicalScalar
	ErrInputLength        = curves.ErrInputLength
)

// Suite construction errors.
var (
	ErrUnknownGroup = curves.ErrUnknownGroup
	ErrUnknownHash  = derive.ErrUnknownHash
	ErrHashSize     = derive.ErrHashSize
	ErrRandomSource = derive.ErrRandomSource
	ErrConfig       = errors.New("stealth: incomplete configuration")
)

// Error records the operation that failed and the underlying cause.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stealth.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
