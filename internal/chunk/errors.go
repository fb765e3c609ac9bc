package chunk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBufferTooShort is returned when a buffer does not contain enough bytes
// to read a fixed-size field.
var ErrBufferTooShort = errors.New("buffer too short")

// ErrInvalidUTF8 is returned when chunk data is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("chunk data is not valid UTF-8")

// reasons reported by ValidationError.
var (
	ErrNonASCII      = errors.New("string is not ASCII")
	ErrNonAlphabetic = errors.New("string contains non-alphabetic characters")
)

// LengthTooLargeError is returned when the declared length exceeds MaxLength.
type LengthTooLargeError struct {
	Length uint32
}

// Error implements the error interface.
func (e *LengthTooLargeError) Error() string {
	return fmt.Sprintf("chunk length %d is too large, it must not exceed %d", e.Length, MaxLength)
}

// IncorrectLengthError is returned when the buffer holds less data than declared.
type IncorrectLengthError struct {
	Length uint32
}

// Error implements the error interface.
func (e *IncorrectLengthError) Error() string {
	return fmt.Sprintf("chunk length %d is too large for the chunk data", e.Length)
}

// CRCFieldSizeError is returned when the bytes that follow the chunk data
// are not exactly a 4-byte CRC.
type CRCFieldSizeError struct {
	Size int
}

// Error implements the error interface.
func (e *CRCFieldSizeError) Error() string {
	return fmt.Sprintf("unable to read CRC: expected 4 bytes, got %d", e.Size)
}

// Is allows to match ErrBufferTooShort when the CRC field is truncated.
func (e *CRCFieldSizeError) Is(target error) bool {
	return target == ErrBufferTooShort && e.Size < crcSize
}

// CRCMismatchError is returned when the stored CRC does not match the data.
type CRCMismatchError struct {
	Expected   uint32
	Calculated uint32
}

// Error implements the error interface.
func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("CRC mismatch: expected %d, calculated %d", e.Expected, e.Calculated)
}

// InvalidLengthError is reported when a chunk type string is not 4 bytes long.
type InvalidLengthError struct {
	Length int
}

// Error implements the error interface.
func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("string length is not 4 (actual length: %d)", e.Length)
}

// ValidationError is returned by ParseType and contains every rule
// that the string violates.
type ValidationError struct {
	Reasons []error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		msgs[i] = r.Error()
	}
	return "invalid chunk type: " + strings.Join(msgs, ", ")
}

// Unwrap allows errors.Is and errors.As to match single reasons.
func (e *ValidationError) Unwrap() []error {
	return e.Reasons
}
