// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package nacha assembles NACHA ACH files from immutable entries and batches.
//
// Entry hashes are kept in int, as moov-io/ach does for its control records,
// so the package requires a 64-bit int.
package nacha

import (
	"strings"
	"unicode/utf8"
)

const (
	// NameLength is the width of the immediate destination and origin name fields.
	NameLength = 23

	// EntryHashModulus keeps batch and file entry hashes within their 10 digit field.
	// It does not fit in a 32-bit int.
	EntryHashModulus = 10000000000

	recordsPerBlock = 10
)

// FormatName truncates or right pads name with spaces to exactly NameLength characters.
func FormatName(name string) string {
	return alphaField(name, NameLength)
}

func alphaField(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

// blockCount returns how many blocks of ten records are needed to hold records.
func blockCount(records int) int {
	return (records + recordsPerBlock - 1) / recordsPerBlock
}
