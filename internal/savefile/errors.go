package savefile

import (
	"errors"
	"fmt"
)

// DecodeError describes a record line that could not be decoded.
type DecodeError struct {
	Line int    // 1-based line number
	Tag  string // section the line belongs to, e.g. "<floor>"
	Raw  string // the line as read, without its line ending
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("savefile: line %d in %s %q: %v", e.Line, e.Tag, e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError wraps a failed read or write of a save file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("savefile: failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ErrUnencodable is wrapped by every *EncodeError.
var ErrUnencodable = errors.New("savefile: record cannot be encoded")

// EncodeError names a record Encode refused to write because the decoder
// would not read it back as the same value.
type EncodeError struct {
	Tag    string // section of the record, e.g. "<floor>"
	Index  int    // position of the record within its section
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("savefile: %s record %d: %s", e.Tag, e.Index, e.Reason)
}

func (e *EncodeError) Unwrap() error { return ErrUnencodable }
