package format

import (
	"fmt"
	"strings"
)

const ioFailurePrefix = "Error processing file: "

// Verdict is the outcome of validating a single file.
//
// Count holds the number of triangles (binary STL) or facets (ASCII STL) and
// is zero whenever Valid is false. OBJ verdicts always carry a zero Count.
type Verdict struct {
	Valid   bool
	Message string
	Count   uint64

	// Unrecognized lists, sorted, the leading tokens of an ASCII STL body
	// that are not part of the recognized keyword vocabulary.
	Unrecognized []string

	// Err is the underlying I/O error, if the file could not be read.
	Err error
}

// Clean reports whether the file is structurally valid and contains no
// unrecognized keywords.
func (v Verdict) Clean() bool {
	return v.Valid && len(v.Unrecognized) == 0
}

func (v Verdict) String() string {
	if len(v.Unrecognized) == 0 {
		return v.Message
	}
	return fmt.Sprintf("%s (unrecognized: %s)", v.Message, strings.Join(v.Unrecognized, ", "))
}

func invalid(msg string) Verdict {
	return Verdict{Message: msg}
}

func invalidf(format string, args ...any) Verdict {
	return Verdict{Message: fmt.Sprintf(format, args...)}
}

func ioFailure(err error) Verdict {
	return Verdict{
		Message: ioFailurePrefix + err.Error(),
		Err:     err,
	}
}
