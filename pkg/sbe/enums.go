package sbe

import (
	"fmt"
	"strings"
)

// Side is the order side. The wire value is the ASCII letter.
type Side byte

const (
	Buy  Side = 'B'
	Sell Side = 'S'
)

// ParseSide validates a raw wire byte.
func ParseSide(b byte) (Side, error) {
	switch Side(b) {
	case Buy, Sell:
		return Side(b), nil
	}
	return 0, fmt.Errorf("%w: side 0x%02x", ErrMalformedEnum, b)
}

// SideFromName accepts "BUY" or "SELL" in any case.
func SideFromName(name string) (Side, error) {
	switch strings.ToUpper(name) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}
	return 0, fmt.Errorf("%w: side %q", ErrMalformedEnum, name)
}

// Valid reports whether s is Buy or Sell.
func (s Side) Valid() bool { return s == Buy || s == Sell }

// String returns the name used in text records.
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return fmt.Sprintf("Side(0x%02x)", byte(s))
}

// MarshalText renders BUY or SELL and fails for any other byte.
func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: side 0x%02x", ErrMalformedEnum, byte(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names SideFromName accepts.
func (s *Side) UnmarshalText(text []byte) error {
	v, err := SideFromName(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ActiveFlag is the one-byte boolean used by Order.
type ActiveFlag byte

const (
	False ActiveFlag = 0
	True  ActiveFlag = 1
)

// ParseActiveFlag validates a raw wire byte.
func ParseActiveFlag(b byte) (ActiveFlag, error) {
	switch ActiveFlag(b) {
	case False, True:
		return ActiveFlag(b), nil
	}
	return 0, fmt.Errorf("%w: active flag 0x%02x", ErrMalformedEnum, b)
}

// ActiveFlagFromName accepts "TRUE" or "FALSE" in any case.
func ActiveFlagFromName(name string) (ActiveFlag, error) {
	switch strings.ToUpper(name) {
	case "TRUE":
		return True, nil
	case "FALSE":
		return False, nil
	}
	return 0, fmt.Errorf("%w: active flag %q", ErrMalformedEnum, name)
}

// FlagOf converts a Go bool.
func FlagOf(v bool) ActiveFlag {
	if v {
		return True
	}
	return False
}

// Valid reports whether f is False or True.
func (f ActiveFlag) Valid() bool { return f == False || f == True }

// Bool converts to a Go bool.
func (f ActiveFlag) Bool() bool { return f == True }

// String returns the name used in text records.
func (f ActiveFlag) String() string {
	switch f {
	case False:
		return "FALSE"
	case True:
		return "TRUE"
	}
	return fmt.Sprintf("ActiveFlag(0x%02x)", byte(f))
}

// MarshalText renders TRUE or FALSE and fails for any other byte.
func (f ActiveFlag) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: active flag 0x%02x", ErrMalformedEnum, byte(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names ActiveFlagFromName accepts.
func (f *ActiveFlag) UnmarshalText(text []byte) error {
	v, err := ActiveFlagFromName(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
