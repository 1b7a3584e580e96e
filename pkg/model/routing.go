// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/moov-io/ach"
)

// InvalidRoutingNumberError is returned when a value isn't a 9-digit ABA routing
// number with a valid check digit.
type InvalidRoutingNumberError struct {
	Value  string
	Reason string
}

func (e *InvalidRoutingNumberError) Error() string {
	return fmt.Sprintf("invalid routing number %q: %s", e.Value, e.Reason)
}

// RoutingNumber is an ABA routing transit number which has passed checksum
// validation. The zero value is unset and never valid.
type RoutingNumber struct {
	digits string
}

// NewRoutingNumber validates s as exactly nine digits whose weighted (3, 7, 1)
// sum is a multiple of 10.
func NewRoutingNumber(s string) (RoutingNumber, error) {
	if len(s) != 9 {
		return RoutingNumber{}, &InvalidRoutingNumberError{
			Value:  s,
			Reason: fmt.Sprintf("expected 9 digits, got %d characters", len(s)),
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return RoutingNumber{}, &InvalidRoutingNumberError{
				Value:  s,
				Reason: fmt.Sprintf("non-digit %q at position %d", s[i], i+1),
			}
		}
	}
	if err := ach.CheckRoutingNumber(s); err != nil {
		return RoutingNumber{}, &InvalidRoutingNumberError{Value: s, Reason: err.Error()}
	}
	return RoutingNumber{digits: s}, nil
}

// MustRoutingNumber is like NewRoutingNumber but panics on invalid input.
// It's intended for constants and tests.
func MustRoutingNumber(s string) RoutingNumber {
	rtn, err := NewRoutingNumber(s)
	if err != nil {
		panic(err)
	}
	return rtn
}

func (r RoutingNumber) IsZero() bool {
	return r.digits == ""
}

func (r RoutingNumber) String() string {
	return r.digits
}

// FormattedWithLeadingSpace returns the routing number right justified in a
// 10 character field, as used by the immediate destination and origin fields.
func (r RoutingNumber) FormattedWithLeadingSpace() string {
	return " " + r.digits
}

// ABA8 returns the first eight digits, the RDFI / ODFI identification.
func (r RoutingNumber) ABA8() string {
	if r.IsZero() {
		return ""
	}
	return r.digits[:8]
}

// FirstEightDigits returns the ABA8 prefix as a number, which is what
// entry hashes are summed from.
func (r RoutingNumber) FirstEightDigits() int {
	if r.IsZero() {
		return 0
	}
	n, err := strconv.Atoi(r.digits[:8])
	if err != nil {
		return 0 // unreachable, digits are checked in NewRoutingNumber
	}
	return n
}

// CheckDigit returns the ninth digit.
func (r RoutingNumber) CheckDigit() string {
	if r.IsZero() {
		return ""
	}
	return r.digits[8:]
}

func (r RoutingNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.digits)
}

func (r *RoutingNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	rtn, err := NewRoutingNumber(s)
	if err != nil {
		return err
	}
	*r = rtn
	return nil
}
