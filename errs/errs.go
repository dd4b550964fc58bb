// Package errs defines the errors shared by the container reader, writer and codecs.
//
// Errors fall into three families that callers can test with errors.Is:
//
//   - ErrUnrecognizedDatatype: an unmapped (type code, byte size) pair in a channel block.
//     The concrete error is *UnrecognizedDatatypeError and carries both values.
//   - ErrIO: a failure of the underlying stream (read, write or seek). The cause
//     stays in the chain, so errors.Is(err, io.ErrUnexpectedEOF) still works.
//   - ErrMalformed: structural problems such as pointers outside the stream,
//     truncated records or sample spans exceeding the stream bounds.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedDatatype = errors.New("unrecognized datatype")
	ErrIO                   = errors.New("i/o failure")
	ErrMalformed            = errors.New("malformed container")
)

// Structural errors. All of them match ErrMalformed.
var (
	ErrInvalidPointer    = fmt.Errorf("%w: pointer outside of stream", ErrMalformed)
	ErrTruncatedRecord   = fmt.Errorf("%w: truncated record", ErrMalformed)
	ErrSpanOutOfBounds   = fmt.Errorf("%w: sample span exceeds stream bounds", ErrMalformed)
	ErrInvalidRecordSize = fmt.Errorf("%w: invalid record size", ErrMalformed)
)

// Writer and codec errors.
var (
	ErrSampleTypeMismatch     = errors.New("sample type does not match channel datatype")
	ErrWriterFinished         = errors.New("writer already finished")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	ErrCorruptArchive         = errors.New("corrupt archive")
)

// UnrecognizedDatatypeError reports a (type code, byte size) pair missing from the
// compatibility table.
type UnrecognizedDatatypeError struct {
	Code uint16
	Size uint16
}

func (e *UnrecognizedDatatypeError) Error() string {
	return fmt.Sprintf("unrecognized datatype (type=%d, size=%d)", e.Code, e.Size)
}

// Is reports whether target is ErrUnrecognizedDatatype.
func (e *UnrecognizedDatatypeError) Is(target error) bool {
	return target == ErrUnrecognizedDatatype
}

// IO wraps err as an ErrIO, keeping err in the chain.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
