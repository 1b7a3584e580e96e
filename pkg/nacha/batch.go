// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package nacha

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moov-io/base"
	"github.com/nexus/paymentrails/pkg/model"
)

// Service class codes describe which directions of entries a batch contains.
const (
	MixedDebitsAndCredits = 200
	CreditsOnly           = 220
	DebitsOnly            = 225
)

var (
	// ErrEmptyBatch is returned when a batch without entries is created or added to a file.
	ErrEmptyBatch = errors.New("batch has no entries")
)

// BatchParams holds the values a Batch is created from.
type BatchParams struct {
	// ID is optional, one is generated when empty.
	ID string

	StandardEntryClassCode model.StandardEntryClassCode

	CompanyName              string
	CompanyIdentification    string
	CompanyEntryDescription  string
	CompanyDiscretionaryData string

	ODFIRoutingNumber  model.RoutingNumber
	EffectiveEntryDate time.Time

	Entries []Entry
}

// Batch is an ordered group of entries originated under one SEC code for one company.
//
// Its entry hash and totals are computed from the entries when the Batch is created.
// The batch number is assigned when the Batch is added to a File.
type Batch struct {
	id      string
	secCode model.StandardEntryClassCode

	companyName              string
	companyIdentification    string
	companyEntryDescription  string
	companyDiscretionaryData string

	odfi               model.RoutingNumber
	effectiveEntryDate time.Time

	entries     []Entry
	batchNumber int

	entryHash    int
	addendaCount int
	debits       model.Amount
	credits      model.Amount
}

// NewBatch validates params and returns a Batch without a batch number.
func NewBatch(params BatchParams) (Batch, error) {
	if err := params.StandardEntryClassCode.Validate(); err != nil {
		return Batch{}, fmt.Errorf("batch: %v", err)
	}
	if strings.TrimSpace(params.CompanyName) == "" {
		return Batch{}, errors.New("batch: missing company name")
	}
	if strings.TrimSpace(params.CompanyIdentification) == "" {
		return Batch{}, errors.New("batch: missing company identification")
	}
	if strings.TrimSpace(params.CompanyEntryDescription) == "" {
		return Batch{}, errors.New("batch: missing company entry description")
	}
	if params.ODFIRoutingNumber.IsZero() {
		return Batch{}, errors.New("batch: missing originating DFI routing number")
	}
	if params.EffectiveEntryDate.IsZero() {
		return Batch{}, errors.New("batch: missing effective entry date")
	}
	if len(params.Entries) == 0 {
		return Batch{}, ErrEmptyBatch
	}

	id := params.ID
	if id == "" {
		id = base.ID()
	}
	batch := Batch{
		id:                       id,
		secCode:                  params.StandardEntryClassCode,
		companyName:              params.CompanyName,
		companyIdentification:    params.CompanyIdentification,
		companyEntryDescription:  params.CompanyEntryDescription,
		companyDiscretionaryData: params.CompanyDiscretionaryData,
		odfi:                     params.ODFIRoutingNumber,
		effectiveEntryDate:       params.EffectiveEntryDate,
		entries:                  make([]Entry, len(params.Entries)),
	}
	copy(batch.entries, params.Entries)

	if err := batch.checkEntries(); err != nil {
		return Batch{}, err
	}
	if err := batch.computeTotals(); err != nil {
		return Batch{}, err
	}
	return batch, nil
}

// checkEntries enforces the rules entries must follow together.
func (b *Batch) checkEntries() error {
	sequenced := b.entries[0].TraceSequence() > 0
	previous := 0
	for _, e := range b.entries {
		if b.secCode == model.TEL && e.IsCredit() {
			return fmt.Errorf("batch: entry %s: TEL batches carry debits only", e.ID())
		}
		if (e.TraceSequence() > 0) != sequenced {
			return fmt.Errorf("batch: entry %s: trace sequences must be set on every entry or none", e.ID())
		}
		if sequenced {
			if e.TraceSequence() <= previous {
				return fmt.Errorf("batch: entry %s: trace sequence %d is not ascending", e.ID(), e.TraceSequence())
			}
			previous = e.TraceSequence()
		}
	}
	return nil
}

func (b *Batch) computeTotals() error {
	symbol := b.entries[0].Amount().Currency()
	debits, credits := model.Zero(symbol), model.Zero(symbol)

	hash, addenda := 0, 0
	for _, e := range b.entries {
		var err error
		if debits, err = debits.Plus(e.DebitAmount()); err != nil {
			return fmt.Errorf("batch: entry %s: %w", e.ID(), err)
		}
		if credits, err = credits.Plus(e.CreditAmount()); err != nil {
			return fmt.Errorf("batch: entry %s: %w", e.ID(), err)
		}
		hash = (hash + e.FirstEightDigitsOfRoutingNumber()) % EntryHashModulus
		addenda += e.AddendaCount()
	}

	b.entryHash = hash
	b.addendaCount = addenda
	b.debits, b.credits = debits, credits
	return nil
}

// withBatchNumber returns a copy of b numbered n. The entries are shared, which
// is safe as they're never modified.
func (b Batch) withBatchNumber(n int) Batch {
	b.batchNumber = n
	return b
}

func (b Batch) ID() string {
	return b.id
}

func (b Batch) StandardEntryClassCode() model.StandardEntryClassCode {
	return b.secCode
}

func (b Batch) CompanyName() string {
	return b.companyName
}

func (b Batch) CompanyIdentification() string {
	return b.companyIdentification
}

func (b Batch) CompanyEntryDescription() string {
	return b.companyEntryDescription
}

func (b Batch) CompanyDiscretionaryData() string {
	return b.companyDiscretionaryData
}

func (b Batch) ODFIRoutingNumber() model.RoutingNumber {
	return b.odfi
}

func (b Batch) EffectiveEntryDate() time.Time {
	return b.effectiveEntryDate
}

// BatchNumber is the 1-based position of the batch in its file, or zero when
// the batch hasn't been added to a file.
func (b Batch) BatchNumber() int {
	return b.batchNumber
}

// Entries returns a copy of the batch's entries in order.
func (b Batch) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b Batch) EntryCount() int {
	return len(b.entries)
}

// AddendaCount is the number of entries flagged with addenda.
func (b Batch) AddendaCount() int {
	return b.addendaCount
}

// EntryHash is the sum of each entry's receiving ABA8, modulo 10^10.
func (b Batch) EntryHash() int {
	return b.entryHash
}

func (b Batch) TotalDebits() model.Amount {
	return b.debits
}

func (b Batch) TotalCredits() model.Amount {
	return b.credits
}

// Currency is the ISO 4217 symbol shared by every entry.
func (b Batch) Currency() string {
	return b.debits.Currency()
}

// ServiceClassCode returns CreditsOnly, DebitsOnly or MixedDebitsAndCredits
// depending on the directions of the entries.
func (b Batch) ServiceClassCode() int {
	var credits, debits bool
	for _, e := range b.entries {
		credits = credits || e.IsCredit()
		debits = debits || e.IsDebit()
	}
	switch {
	case credits && !debits:
		return CreditsOnly
	case debits && !credits:
		return DebitsOnly
	default:
		return MixedDebitsAndCredits
	}
}
