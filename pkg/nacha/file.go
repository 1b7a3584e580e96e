// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package nacha

import (
	"errors"
	"fmt"
	"time"

	"github.com/moov-io/base"
	"github.com/nexus/paymentrails/pkg/model"
)

const (
	DefaultFileIDModifier = "A"

	// DefaultCurrency is used for the totals of a file without batches.
	DefaultCurrency = "USD"
)

// FileParams holds the values a File is created from.
type FileParams struct {
	// ID is optional, one is generated when empty.
	ID string

	ImmediateDestination     model.RoutingNumber
	ImmediateOrigin          model.RoutingNumber
	ImmediateDestinationName string
	ImmediateOriginName      string

	// CreatedAt is formatted in its own location for the creation date and time fields.
	CreatedAt time.Time

	// FileIDModifier distinguishes files created on the same day, A-Z or 0-9.
	// Defaults to DefaultFileIDModifier.
	FileIDModifier string
}

// File is a NACHA file: header values, ordered batches and the control totals
// derived from them. AddBatch and WithStatus return new Files, the receiver is
// never modified.
type File struct {
	id string

	immediateDestination     model.RoutingNumber
	immediateOrigin          model.RoutingNumber
	immediateDestinationName string
	immediateOriginName      string

	createdAt      time.Time
	fileIDModifier string

	batches []Batch
	status  model.FileStatus

	currency          string
	entryHash         int
	entryAddendaCount int
	recordCount       int
	debits            model.Amount
	credits           model.Amount
}

// NewFile returns a GENERATED File without batches.
func NewFile(params FileParams) (File, error) {
	if params.ImmediateDestination.IsZero() {
		return File{}, errors.New("file: missing immediate destination")
	}
	if params.ImmediateOrigin.IsZero() {
		return File{}, errors.New("file: missing immediate origin")
	}
	if params.CreatedAt.IsZero() {
		return File{}, errors.New("file: missing creation time")
	}
	modifier := params.FileIDModifier
	if modifier == "" {
		modifier = DefaultFileIDModifier
	}
	if err := ValidateFileIDModifier(modifier); err != nil {
		return File{}, fmt.Errorf("file: %v", err)
	}

	id := params.ID
	if id == "" {
		id = base.ID()
	}
	f := File{
		id:                       id,
		immediateDestination:     params.ImmediateDestination,
		immediateOrigin:          params.ImmediateOrigin,
		immediateDestinationName: params.ImmediateDestinationName,
		immediateOriginName:      params.ImmediateOriginName,
		createdAt:                params.CreatedAt,
		fileIDModifier:           modifier,
		status:                   model.FileGenerated,
		currency:                 DefaultCurrency,
	}
	if err := f.computeTotals(); err != nil {
		return File{}, err
	}
	return f, nil
}

// ValidateFileIDModifier checks modifier is a single upper case letter or digit.
func ValidateFileIDModifier(modifier string) error {
	if len(modifier) != 1 {
		return fmt.Errorf("file ID modifier %q must be one character", modifier)
	}
	c := modifier[0]
	if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return nil
	}
	return fmt.Errorf("file ID modifier %q must be A-Z or 0-9", modifier)
}

// AddBatch returns a new File with batch appended and numbered one past the
// existing batches. Every batch in a file must share one currency.
func (f File) AddBatch(batch Batch) (File, error) {
	if batch.EntryCount() == 0 {
		return File{}, ErrEmptyBatch
	}
	if len(f.batches) > 0 && batch.Currency() != f.currency {
		return File{}, fmt.Errorf("file: batch %s is %s, file is %s: %w", batch.ID(), batch.Currency(), f.currency, model.ErrDifferentCurrencies)
	}

	next := f
	next.batches = make([]Batch, len(f.batches), len(f.batches)+1)
	copy(next.batches, f.batches)
	next.batches = append(next.batches, batch.withBatchNumber(len(f.batches)+1))
	next.currency = batch.Currency()

	if err := next.computeTotals(); err != nil {
		return File{}, err
	}
	return next, nil
}

// WithStatus returns a new File in status. Only transitions along
// GENERATED -> TRANSMITTED -> ACKNOWLEDGED | REJECTED are accepted.
func (f File) WithStatus(status model.FileStatus) (File, error) {
	if err := status.Validate(); err != nil {
		return File{}, err
	}
	if !f.status.CanTransitionTo(status) {
		return File{}, &model.TransitionError{From: f.status, To: status}
	}
	next := f
	next.status = status
	return next, nil
}

func (f *File) computeTotals() error {
	debits, credits := model.Zero(f.currency), model.Zero(f.currency)
	hash, entries, records := 0, 0, 2 // file header and control
	for _, b := range f.batches {
		var err error
		if debits, err = debits.Plus(b.TotalDebits()); err != nil {
			return fmt.Errorf("file: batch %s: %w", b.ID(), err)
		}
		if credits, err = credits.Plus(b.TotalCredits()); err != nil {
			return fmt.Errorf("file: batch %s: %w", b.ID(), err)
		}
		hash = (hash + b.EntryHash()) % EntryHashModulus
		entries += b.EntryCount() + b.AddendaCount()
		records += 2 + b.EntryCount() + b.AddendaCount() // batch header and control
	}
	f.debits, f.credits = debits, credits
	f.entryHash = hash
	f.entryAddendaCount = entries
	f.recordCount = records
	return nil
}

func (f File) ID() string {
	return f.id
}

func (f File) Status() model.FileStatus {
	return f.status
}

func (f File) ImmediateDestination() model.RoutingNumber {
	return f.immediateDestination
}

func (f File) ImmediateOrigin() model.RoutingNumber {
	return f.immediateOrigin
}

// FormattedImmediateDestination returns the 10 character immediate destination field.
func (f File) FormattedImmediateDestination() string {
	return f.immediateDestination.FormattedWithLeadingSpace()
}

// FormattedImmediateOrigin returns the 10 character immediate origin field.
func (f File) FormattedImmediateOrigin() string {
	return f.immediateOrigin.FormattedWithLeadingSpace()
}

func (f File) DestinationName() string {
	return f.immediateDestinationName
}

func (f File) OriginName() string {
	return f.immediateOriginName
}

// FormattedDestinationName returns the destination name cut or padded to 23 characters.
func (f File) FormattedDestinationName() string {
	return FormatName(f.immediateDestinationName)
}

// FormattedOriginName returns the origin name cut or padded to 23 characters.
func (f File) FormattedOriginName() string {
	return FormatName(f.immediateOriginName)
}

func (f File) CreatedAt() time.Time {
	return f.createdAt
}

// FileCreationDate returns the creation date as YYMMDD.
func (f File) FileCreationDate() string {
	return f.createdAt.Format("060102")
}

// FileCreationTime returns the creation time as HHMM.
func (f File) FileCreationTime() string {
	return f.createdAt.Format("1504")
}

func (f File) FileIDModifier() string {
	return f.fileIDModifier
}

// SuggestedFilename returns ACH_<YYYYMMDD>_<HHMMSS>_<modifier>.txt from the creation time.
func (f File) SuggestedFilename() string {
	return fmt.Sprintf("ACH_%s_%s_%s.txt", f.createdAt.Format("20060102"), f.createdAt.Format("150405"), f.fileIDModifier)
}

// Batches returns a copy of the file's batches in order.
func (f File) Batches() []Batch {
	out := make([]Batch, len(f.batches))
	copy(out, f.batches)
	return out
}

func (f File) BatchCount() int {
	return len(f.batches)
}

// EntryAddendaCount is the number of entry and addenda records across all batches.
func (f File) EntryAddendaCount() int {
	return f.entryAddendaCount
}

// RecordCount is every record in the file: the file header and control plus
// each batch's header, control, entries and addenda.
func (f File) RecordCount() int {
	return f.recordCount
}

// BlockCount is the number of 10 record blocks needed for RecordCount.
func (f File) BlockCount() int {
	return blockCount(f.recordCount)
}

// EntryHash is the sum of the batch entry hashes, modulo 10^10.
func (f File) EntryHash() int {
	return f.entryHash
}

func (f File) TotalDebits() model.Amount {
	return f.debits
}

func (f File) TotalCredits() model.Amount {
	return f.credits
}

func (f File) Currency() string {
	return f.currency
}
