// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	// ErrDifferentCurrencies is returned when an operation on an Amount instance is attempted with another Amount of a different currency (symbol).
	ErrDifferentCurrencies = errors.New("different currencies")

	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Amount represents units of a particular currency.
//
// The quantity is held in minor units (cents) so sums are exact.
type Amount struct {
	number int
	symbol string // ISO 4217, i.e. USD, GBP
}

// Zero returns an Amount of nothing in the given currency.
func Zero(symbol string) Amount {
	return Amount{symbol: strings.ToUpper(symbol)}
}

// Int returns the currency amount as an integer.
// Example: "USD 1.11" returns 111
func (a *Amount) Int() int {
	if a == nil {
		return 0
	}
	return a.number
}

// Currency returns the ISO 4217 symbol of the Amount.
func (a Amount) Currency() string {
	return a.symbol
}

func (a Amount) IsZero() bool {
	return a.number == 0
}

func (a *Amount) Validate() error {
	if a == nil {
		return errors.New("nil Amount")
	}
	if a.number < 0 {
		return fmt.Errorf("negative Amount: %d", a.number)
	}
	_, err := currency.ParseISO(a.symbol)
	return err
}

func (a Amount) Equal(other Amount) bool {
	return a.number == other.number && a.symbol == other.symbol
}

// Plus returns an Amount of adding both Amount instances together.
// Currency symbols must match for Plus to return without errors.
func (a Amount) Plus(other Amount) (Amount, error) {
	if a.symbol != other.symbol {
		return a, ErrDifferentCurrencies
	}
	return Amount{number: a.number + other.number, symbol: a.symbol}, nil
}

// NewAmountFromInt returns an Amount object after converting an integer amount (in cents)
// and validating the ISO 4217 currency symbol.
func NewAmountFromInt(symbol string, number int) (*Amount, error) {
	if number < 0 {
		return nil, fmt.Errorf("negative Amount: %d", number)
	}
	sym, err := currency.ParseISO(symbol)
	if err != nil {
		return nil, err
	}
	return &Amount{number: number, symbol: sym.String()}, nil
}

// NewAmount returns an Amount object after validating the ISO 4217 currency symbol.
// The number is read as a decimal quantity of the currency, "12" is twelve whole units.
func NewAmount(symbol string, number string) (*Amount, error) {
	var amt Amount
	if err := amt.FromString(fmt.Sprintf("%s %s", symbol, number)); err != nil {
		return nil, err
	}
	return &amt, nil
}

// String returns an amount formatted with the currency.
// Examples:
//   USD 12.53
//   GBP 4.02
//
// The symbol returned corresponds to the ISO 4217 standard.
func (a *Amount) String() string {
	if a == nil || a.symbol == "" {
		return "USD 0.00"
	}
	return fmt.Sprintf("%s %s", a.symbol, formattedNumber(a.number))
}

func formattedNumber(number int) string {
	return decimal.New(int64(number), -2).StringFixed(2)
}

// ParseAmount attempts to read a string as a valid currency symbol and number.
// Examples:
//   USD 12.53
func ParseAmount(in string) (*Amount, error) {
	var amt Amount
	if err := amt.FromString(in); err != nil {
		return nil, err
	}
	return &amt, nil
}

// FromString attempts to parse str as a valid currency symbol and
// the quantity. Fractions of a cent are rounded half away from zero.
// Examples:
//   USD 12.53
//   GBP 4.02
func (a *Amount) FromString(str string) error {
	if a == nil {
		return errors.New("nil Amount")
	}

	parts := strings.Fields(str)
	if len(parts) != 2 {
		return fmt.Errorf("invalid Amount format: %q", str)
	}

	sym, err := currency.ParseISO(parts[0])
	if err != nil {
		return err
	}

	dec, err := decimal.NewFromString(parts[1])
	if err != nil {
		return fmt.Errorf("unable to read %s: %v", parts[1], err)
	}
	if dec.IsNegative() {
		return fmt.Errorf("negative Amount: %s", parts[1])
	}
	cents := dec.Round(2).Shift(2)
	if cents.GreaterThan(maxCents) {
		return fmt.Errorf("amount %s is too large", parts[1])
	}

	a.number = int(cents.IntPart())
	a.symbol = sym.String()
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return a.FromString(s)
}
