// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package nacha

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/moov-io/base"
	"github.com/nexus/paymentrails/pkg/model"
)

const (
	// MaxEntryAmount is the largest amount (in cents) which fits the 10 digit
	// entry detail amount field.
	MaxEntryAmount = 9999999999

	// MaxAddendaLength is the size of an Addenda05 payment related information field.
	MaxAddendaLength = 80

	maxTraceSequence = 9999999
)

var (
	// ErrPrenoteAmount is returned when a prenotification entry carries a non-zero amount.
	ErrPrenoteAmount = errors.New("prenote entries must have a zero amount")
)

// EntryParams holds the values an Entry is created from.
type EntryParams struct {
	// ID is optional, one is generated when empty.
	ID string

	RoutingNumber model.RoutingNumber
	AccountNumber string
	AccountType   model.AccountType

	// IndividualName is the receiver's name, or the receiving company for CCD / CTX.
	IndividualName       string
	IdentificationNumber string

	// TraceSequence is the last seven digits of the trace number. Zero lets the
	// entry's position within its batch be used instead.
	TraceSequence int

	Amount model.Amount

	// Addenda is free-form payment related information. A non-empty value sets the
	// addenda record indicator.
	Addenda           string
	DiscretionaryData string

	// Prenote marks a zero-dollar prenotification entry.
	Prenote bool
}

// Entry is a single credit or debit to a receiver's account. Entries are
// immutable, corrections need a new Entry.
type Entry struct {
	id                   string
	txType               model.TransactionType
	routingNumber        model.RoutingNumber
	accountNumber        string
	accountType          model.AccountType
	individualName       string
	identificationNumber string
	traceSequence        int
	amount               model.Amount
	addenda              string
	discretionaryData    string
	prenote              bool
}

// Credit returns an Entry which deposits funds into the receiver's account.
func Credit(params EntryParams) (Entry, error) {
	return newEntry(model.Credit, params)
}

// Debit returns an Entry which withdraws funds from the receiver's account.
func Debit(params EntryParams) (Entry, error) {
	return newEntry(model.Debit, params)
}

func newEntry(txType model.TransactionType, p EntryParams) (Entry, error) {
	if p.RoutingNumber.IsZero() {
		return Entry{}, errors.New("entry: missing receiving routing number")
	}
	if strings.TrimSpace(p.AccountNumber) == "" {
		return Entry{}, errors.New("entry: missing account number")
	}
	if err := p.AccountType.Validate(); err != nil {
		return Entry{}, fmt.Errorf("entry: %v", err)
	}
	if strings.TrimSpace(p.IndividualName) == "" {
		return Entry{}, errors.New("entry: missing individual name")
	}
	if err := p.Amount.Validate(); err != nil {
		return Entry{}, fmt.Errorf("entry: amount: %v", err)
	}
	if int64(p.Amount.Int()) > MaxEntryAmount {
		return Entry{}, fmt.Errorf("entry: amount %s exceeds the entry amount field", p.Amount.String())
	}
	if p.Prenote && !p.Amount.IsZero() {
		return Entry{}, ErrPrenoteAmount
	}
	if p.TraceSequence < 0 || p.TraceSequence > maxTraceSequence {
		return Entry{}, fmt.Errorf("entry: trace sequence %d out of range", p.TraceSequence)
	}
	if n := utf8.RuneCountInString(p.Addenda); n > MaxAddendaLength {
		return Entry{}, fmt.Errorf("entry: addenda is %d characters, max is %d", n, MaxAddendaLength)
	}

	id := p.ID
	if id == "" {
		id = base.ID()
	}
	return Entry{
		id:                   id,
		txType:               txType,
		routingNumber:        p.RoutingNumber,
		accountNumber:        p.AccountNumber,
		accountType:          p.AccountType,
		individualName:       p.IndividualName,
		identificationNumber: p.IdentificationNumber,
		traceSequence:        p.TraceSequence,
		amount:               p.Amount,
		addenda:              p.Addenda,
		discretionaryData:    p.DiscretionaryData,
		prenote:              p.Prenote,
	}, nil
}

func (e Entry) ID() string {
	return e.id
}

func (e Entry) Type() model.TransactionType {
	return e.txType
}

func (e Entry) IsCredit() bool {
	return e.txType == model.Credit
}

func (e Entry) IsDebit() bool {
	return e.txType == model.Debit
}

func (e Entry) IsPrenote() bool {
	return e.prenote
}

func (e Entry) RoutingNumber() model.RoutingNumber {
	return e.routingNumber
}

// FirstEightDigitsOfRoutingNumber is the entry's contribution to its batch's entry hash.
func (e Entry) FirstEightDigitsOfRoutingNumber() int {
	return e.routingNumber.FirstEightDigits()
}

func (e Entry) AccountNumber() string {
	return e.accountNumber
}

func (e Entry) AccountType() model.AccountType {
	return e.accountType
}

func (e Entry) IndividualName() string {
	return e.individualName
}

func (e Entry) IdentificationNumber() string {
	return e.identificationNumber
}

func (e Entry) TraceSequence() int {
	return e.traceSequence
}

func (e Entry) Amount() model.Amount {
	return e.amount
}

// DebitAmount returns the entry's amount for debits and zero for credits.
func (e Entry) DebitAmount() model.Amount {
	if e.IsDebit() {
		return e.amount
	}
	return model.Zero(e.amount.Currency())
}

// CreditAmount returns the entry's amount for credits and zero for debits.
func (e Entry) CreditAmount() model.Amount {
	if e.IsCredit() {
		return e.amount
	}
	return model.Zero(e.amount.Currency())
}

func (e Entry) HasAddenda() bool {
	return e.addenda != ""
}

func (e Entry) Addenda() string {
	return e.addenda
}

// AddendaCount is the number of addenda records written after this entry.
func (e Entry) AddendaCount() int {
	if e.HasAddenda() {
		return 1
	}
	return 0
}

func (e Entry) DiscretionaryData() string {
	return e.discretionaryData
}
