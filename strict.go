package j1939

import (
	"errors"
	"fmt"
)

// ErrFieldOutOfRange indicates that value given for identifier field does not fit into its bits.
var ErrFieldOutOfRange = errors.New("field value out of range")

// FieldOutOfRangeError is returned by strict encoding instead of silently truncating value.
type FieldOutOfRangeError struct {
	Field string
	Value int64
	Max   int64
}

func (e *FieldOutOfRangeError) Error() string {
	return fmt.Sprintf("%s value %d is out of range 0-%d", e.Field, e.Value, e.Max)
}

// Is allows errors.Is(err, ErrFieldOutOfRange) checks.
func (e *FieldOutOfRangeError) Is(target error) bool {
	return target == ErrFieldOutOfRange
}

// Fields holds not yet validated values for building CAN ID.
type Fields struct {
	Priority      int64
	PGN           int64
	SourceAddress int64
	Reserved      int64
}

// Validate checks that every field fits into its bits in CAN ID. First failing field is returned.
func (f Fields) Validate() error {
	if errs := f.OutOfRange(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// OutOfRange returns error for every field that does not fit into its bits in CAN ID, in order
// priority, pgn, source address, reserved.
func (f Fields) OutOfRange() []*FieldOutOfRangeError {
	checks := []struct {
		name  string
		value int64
		max   int64
	}{
		{name: "priority", value: f.Priority, max: 0x7},
		{name: "pgn", value: f.PGN, max: PGNMask},
		{name: "source address", value: f.SourceAddress, max: 0xFF},
		{name: "reserved", value: f.Reserved, max: 0x1},
	}
	var result []*FieldOutOfRangeError
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			result = append(result, &FieldOutOfRangeError{Field: c.name, Value: c.value, Max: c.max})
		}
	}
	return result
}

// BuildCANIDStrict is BuildCANID that rejects out of range values instead of truncating them.
//
// Note: for PDU1 PGNs non-zero lowest byte is still accepted and placed into PDU specific slot, same
// as BuildCANID does.
func BuildCANIDStrict(f Fields) (uint32, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	return BuildCANID(uint8(f.Priority), uint32(f.PGN), uint8(f.SourceAddress), uint8(f.Reserved)), nil
}
