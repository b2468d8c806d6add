// Package codec implements the SEA sign-LMS adaptive audio codec: the
// predictor, quantization tables, chunk container and the CBR/VBR encoders
// that drive them.
package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the codec. Callers compare against these with
// errors.Is; wrapping (see wrapIO) preserves the match.
var (
	ErrRead               = errors.New("sea: short read")
	ErrInvalidParameters  = errors.New("sea: invalid encoder settings")
	ErrInvalidFile        = errors.New("sea: invalid file")
	ErrInvalidFrame       = errors.New("sea: invalid frame")
	ErrEncoderClosed      = errors.New("sea: encoder or decoder closed")
	ErrUnsupportedVersion = errors.New("sea: unsupported file version")
	ErrTooManyFrames      = errors.New("sea: too many frames")
	ErrMetadataTooLarge   = errors.New("sea: metadata too large")
)

// ioError wraps an underlying reader/writer failure so that it still
// satisfies errors.Is against the sentinel it occurred while servicing.
type ioError struct {
	sentinel error
	cause    error
}

func (e *ioError) Error() string {
	return fmt.Sprintf("%s: %v", e.sentinel, e.cause)
}

func (e *ioError) Unwrap() error {
	return e.cause
}

func (e *ioError) Is(target error) bool {
	return target == e.sentinel
}

// wrapIO annotates a lower-level I/O failure with the sentinel it occurred
// under, without discarding either one.
func wrapIO(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return &ioError{sentinel: sentinel, cause: cause}
}
