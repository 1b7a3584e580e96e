// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"fmt"
	"unicode/utf8"
)

// TraceNumber returns the 15 digit trace number of the sequence'th entry
// originated by the given routing number.
func TraceNumber(routingNumber string, sequence int) string {
	return fmt.Sprintf("%s%07d", ABA8(routingNumber), sequence)
}

// ABA8 returns the first 8 digits of an ABA routing number.
// If the input is invalid then an empty string is returned.
func ABA8(rtn string) string {
	if n := utf8.RuneCountInString(rtn); n == 10 {
		return rtn[1:9] // immediate fields are prefixed with a space, 0, or 1
	}
	if n := utf8.RuneCountInString(rtn); n != 8 && n != 9 {
		return ""
	}
	return rtn[:8]
}
