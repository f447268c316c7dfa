package sbe

import (
	"errors"
	"testing"
)

func TestParseSide(t *testing.T) {
	for _, b := range []byte{'B', 'S'} {
		s, err := ParseSide(b)
		if err != nil || byte(s) != b {
			t.Errorf("ParseSide(%q) = %v, %v", b, s, err)
		}
	}
	for _, b := range []byte{0, 'b', 's', 'X', 0xff} {
		if _, err := ParseSide(b); !errors.Is(err, ErrMalformedEnum) {
			t.Errorf("ParseSide(%#x) err = %v", b, err)
		}
	}
}

func TestParseActiveFlag(t *testing.T) {
	for _, b := range []byte{0, 1} {
		f, err := ParseActiveFlag(b)
		if err != nil || byte(f) != b {
			t.Errorf("ParseActiveFlag(%d) = %v, %v", b, f, err)
		}
	}
	for _, b := range []byte{2, 'T', 0xff} {
		if _, err := ParseActiveFlag(b); !errors.Is(err, ErrMalformedEnum) {
			t.Errorf("ParseActiveFlag(%#x) err = %v", b, err)
		}
	}
	if !True.Bool() || False.Bool() {
		t.Error("Bool mapping")
	}
	if FlagOf(true) != True || FlagOf(false) != False {
		t.Error("FlagOf mapping")
	}
}

func TestEnumText(t *testing.T) {
	tests := []struct {
		name string
		v    interface {
			MarshalText() ([]byte, error)
		}
		want string
	}{
		{"buy", Buy, "BUY"},
		{"sell", Sell, "SELL"},
		{"true", True, "TRUE"},
		{"false", False, "FALSE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.MarshalText()
			if err != nil || string(got) != tt.want {
				t.Errorf("MarshalText = %q, %v", got, err)
			}
		})
	}

	var s Side
	if err := s.UnmarshalText([]byte("sell")); err != nil || s != Sell {
		t.Errorf("UnmarshalText(sell) = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("HOLD")); !errors.Is(err, ErrMalformedEnum) {
		t.Errorf("UnmarshalText(HOLD) err = %v", err)
	}
	var f ActiveFlag
	if err := f.UnmarshalText([]byte("TRUE")); err != nil || f != True {
		t.Errorf("UnmarshalText(TRUE) = %v, %v", f, err)
	}
	if _, err := Side('X').MarshalText(); !errors.Is(err, ErrMalformedEnum) {
		t.Errorf("MarshalText of invalid side err = %v", err)
	}
}
