package ebfpack

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// DomainError is the error type returned by every package in this module. Use
// [errors.Is] against the exported sentinels to classify a failure.
type DomainError interface {
	error
	WithMessage(message string) DomainError
	Wrap(err error) DomainError
}

type baseEbfError string

const rootError = baseEbfError("")

var ErrInputTooShort = rootError.WithMessage("Input shorter than the EBF header")
var ErrTruncatedRun = rootError.WithMessage("Run token truncated")
var ErrInvalidRunLength = rootError.WithMessage("Run length out of range")
var ErrLiteralOverflow = rootError.WithMessage("Hex literal does not fit in a byte")
var ErrConverterFailed = rootError.WithMessage("Image converter failed")
var ErrInvalidManifest = rootError.WithMessage("Invalid asset manifest")
var ErrDuplicateAsset = rootError.WithMessage("Duplicate asset name")
var ErrInvalidName = rootError.WithMessage("Invalid C identifier")
var ErrIO = rootError.WithMessage("Input/output error")
var ErrSizeMismatch = rootError.WithMessage("Decoded size does not match header")

func (e baseEbfError) Error() string {
	return string(e)
}

func (e baseEbfError) WithMessage(message string) DomainError {
	return customEbfError{
		message:       message,
		originalError: e,
	}
}

func (e baseEbfError) Wrap(err error) DomainError {
	return customEbfError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customEbfError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customEbfError) Error() string {
	return e.message
}

func (e customEbfError) WithMessage(message string) DomainError {
	return customEbfError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

// Wrap attaches err as a cause. The result matches both e and err under
// [errors.Is].
func (e customEbfError) Wrap(err error) DomainError {
	return customEbfError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customEbfError) Unwrap() error {
	return e.originalError
}
