// asterix/errors.go
package asterix

import (
	"fmt"
	"time"
)

// Core ASTERIX errors. Structural, Length and Semantic categories from
// spec.md §7 are all represented as sentinels so callers can classify a
// failure with errors.Is regardless of the wrapping added on the way up.
var (
	// Structural
	ErrInvalidFSPEC    = fmt.Errorf("invalid FSPEC")
	ErrFRNOutOfRange   = fmt.Errorf("FRN out of range")
	ErrUAPNotDefined   = fmt.Errorf("UAP not defined for category")
	ErrUnknownDataItem = fmt.Errorf("unknown data item")

	// Length
	ErrBufferTooShort = fmt.Errorf("buffer too short")
	ErrLengthCapped   = fmt.Errorf("length exceeds category cap")

	// Semantic
	ErrInvalidField      = fmt.Errorf("invalid field value")
	ErrMutuallyExclusive = fmt.Errorf("mutually exclusive subfields both present")

	// Record / message level
	ErrEmptyRecord     = fmt.Errorf("empty ASTERIX record")
	ErrInvalidMessage  = fmt.Errorf("invalid ASTERIX message")
	ErrInvalidLength   = fmt.Errorf("invalid length")
	ErrInvalidCategory = fmt.Errorf("invalid category")
	ErrUnknownCategory = fmt.Errorf("unknown category")
	ErrMandatoryField  = fmt.Errorf("mandatory field missing")
	ErrInvalidDataType = fmt.Errorf("invalid data type")
)

// Outcome is what an item decoder reports back to the kernel: spec.md §4.C/§7.
type Outcome int

const (
	// OK means the item decoded cleanly and should be kept.
	OK Outcome = iota
	// Skip means the item is discarded but the record continues (e.g.
	// repetition factor zero, empty compound, unknown opaque content).
	Skip
	// Error means the record is aborted.
	Error
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Skip:
		return "skip"
	default:
		return "error"
	}
}

// DecodeError is the diagnostic emitted for every aborted record
// (spec.md §7 "User-visible behaviour"). Offset is the byte offset of
// the failing record within the stream the Framer handed the decoder.
// Decoder.Decode does not set RelativeTime; it is left nil.
type DecodeError struct {
	Category     Category
	Offset       int
	RelativeTime *time.Duration
	Item         string // data item id, when the failure is item-scoped
	Err          error
}

func (e *DecodeError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("%s: decoding %s at offset %d: %v", e.Category, e.Item, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: at offset %d: %v", e.Category, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError provides detailed context for validation failures.
type ValidationError struct {
	DataItem string
	Field    string
	Value    any
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s.%s: %v - %s",
		e.DataItem, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidField
}
