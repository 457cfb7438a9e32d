package webserver

import (
	"errors"
	"strconv"
	"strings"
)

// ByteRange is an inclusive interval over a file's bytes.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

var errMalformedRange = errors.New("malformed range")

// parseRange resolves a Range header value of the form "bytes=<start>-<end>"
// against a file of the given length. Only the single-range form is
// understood; multi-range values and anything else that doesn't match the
// shape are rejected explicitly instead of degrading to an undefined slice.
func parseRange(value string, length int64) (ByteRange, error) {
	spec, ok := strings.CutPrefix(value, "bytes=")
	if !ok {
		return ByteRange{}, errMalformedRange
	}
	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return ByteRange{}, errMalformedRange
	}
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return ByteRange{}, errMalformedRange
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return ByteRange{}, errMalformedRange
	}
	if start < 0 || start > end || end >= length {
		return ByteRange{}, errMalformedRange
	}
	return ByteRange{Start: start, End: end}, nil
}
