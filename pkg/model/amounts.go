// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
)

// SumAmounts adds every amount together, all of which must be in symbol's currency.
func SumAmounts(symbol string, amounts ...Amount) (Amount, error) {
	total := Zero(symbol)
	for i := range amounts {
		sum, err := total.Plus(amounts[i])
		if err != nil {
			return total, fmt.Errorf("amount #%d (%s): %w", i, amounts[i].String(), err)
		}
		total = sum
	}
	return total, nil
}
