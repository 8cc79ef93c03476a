package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. If exactly one non-nil
// error is given, it is returned as it is. Otherwise a multi error
// containing all of them is returned.
func Append(errs ...error) error {
	var all multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		// Flatten so that no multi error contains another one.
		if m, ok := err.(multiErr); ok {
			all = append(all, m...)
		} else {
			all = append(all, err)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return all
	}
}

type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(m), strings.Join(points, "\n\t"))
}

// Unpack returns the list of clubbed errors.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first error, consistent with a fail
// fast approach.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

type unpacker interface {
	Unpack() []error
}
