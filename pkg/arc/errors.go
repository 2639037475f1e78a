package arc

import (
	"errors"
	"fmt"
)

// ErrNotArcFormat reports that the input does not begin with the data.arc
// magic number. It is the only recoverable parse error: the caller may hand
// the stream to a different format parser. Every other error returned after
// the magic has matched signals a corrupt file or an unsupported variant.
var ErrNotArcFormat = errors.New("not a data.arc file")

// CorruptHeaderError reports a header whose fields are internally
// inconsistent, such as a declared node section size smaller than the
// node header itself.
type CorruptHeaderError struct {
	Field  string
	Reason string
}

func (e *CorruptHeaderError) Error() string {
	return fmt.Sprintf("corrupt header: %s %s", e.Field, e.Reason)
}

// TruncatedDataError reports a section or record whose declared size
// exceeds the bytes remaining in the buffer.
type TruncatedDataError struct {
	Section   string
	Needed    int
	Available int
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("truncated data: %s needs %d bytes, %d available", e.Section, e.Needed, e.Available)
}

// UnsupportedFeatureError reports a file variant the parser recognizes but
// does not decode.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("unsupported feature: %s", e.Feature)
}
