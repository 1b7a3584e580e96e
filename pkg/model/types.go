// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransactionType is the direction funds move for the receiver of an entry.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

func (tt TransactionType) Validate() error {
	switch tt {
	case Credit, Debit:
		return nil
	default:
		return fmt.Errorf("TransactionType(%s) is invalid", tt)
	}
}

func (tt *TransactionType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*tt = TransactionType(strings.ToLower(s))
	return tt.Validate()
}

type AccountType string

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
)

func (t AccountType) Validate() error {
	switch t {
	case Checking, Savings:
		return nil
	default:
		return fmt.Errorf("AccountType(%s) is invalid", t)
	}
}

func (t *AccountType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = AccountType(strings.ToLower(s))
	return t.Validate()
}

// StandardEntryClassCode classifies the authorization a batch of entries was
// originated under.
type StandardEntryClassCode string

const (
	PPD StandardEntryClassCode = "PPD"
	CCD StandardEntryClassCode = "CCD"
	WEB StandardEntryClassCode = "WEB"
	TEL StandardEntryClassCode = "TEL"
	CTX StandardEntryClassCode = "CTX"
	IAT StandardEntryClassCode = "IAT"
)

func (code StandardEntryClassCode) Validate() error {
	switch code {
	case PPD, CCD, WEB, TEL, CTX, IAT:
		return nil
	default:
		return fmt.Errorf("StandardEntryClassCode(%s) is invalid", code)
	}
}

func (code *StandardEntryClassCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*code = StandardEntryClassCode(strings.ToUpper(s))
	return code.Validate()
}
