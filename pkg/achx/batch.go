// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"errors"
	"fmt"
	"time"

	"github.com/moov-io/ach"
	"github.com/moov-io/base"
	"github.com/nexus/paymentrails/pkg/model"
	"github.com/nexus/paymentrails/pkg/nacha"
)

var (
	// ErrUnsupportedSECCode is returned for batches whose SEC code can't be
	// rendered from the fields an entry carries. IAT needs the 10-18 addenda.
	ErrUnsupportedSECCode = errors.New("unsupported standard entry class code")

	secCodes = map[model.StandardEntryClassCode]string{
		model.PPD: ach.PPD,
		model.CCD: ach.CCD,
		model.WEB: ach.WEB,
		model.TEL: ach.TEL,
		model.CTX: ach.CTX,
	}
)

// EffectiveEntryDate returns the next banking day after now in loc, the date
// entries originated at now are posted. A nil loc keeps now's location.
func EffectiveEntryDate(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return base.NewTime(now).AddBankingDay(1).Time
}

// makeBatchHeader creates an ach.BatchHeader from the given batch.
func makeBatchHeader(batch nacha.Batch, secCode string) *ach.BatchHeader {
	bh := ach.NewBatchHeader()
	bh.ID = batch.ID()
	bh.ServiceClassCode = batch.ServiceClassCode()
	bh.StandardEntryClassCode = secCode

	bh.CompanyName = batch.CompanyName()
	bh.CompanyIdentification = batch.CompanyIdentification()
	bh.CompanyEntryDescription = batch.CompanyEntryDescription() // 10 character max
	bh.CompanyDiscretionaryData = batch.CompanyDiscretionaryData()

	bh.EffectiveEntryDate = batch.EffectiveEntryDate().Format("060102") // Date to be posted, YYMMDD
	bh.ODFIIdentification = batch.ODFIRoutingNumber().ABA8()
	bh.BatchNumber = batch.BatchNumber()

	return bh
}

func createBatch(batch nacha.Batch) (ach.Batcher, error) {
	secCode, ok := secCodes[batch.StandardEntryClassCode()]
	if !ok {
		return nil, fmt.Errorf("batch %s: %s: %w", batch.ID(), batch.StandardEntryClassCode(), ErrUnsupportedSECCode)
	}

	b, err := ach.NewBatch(makeBatchHeader(batch, secCode))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s batch: %v", secCode, err)
	}

	for i, entry := range batch.Entries() {
		if secCode == ach.TEL && entry.HasAddenda() {
			return nil, fmt.Errorf("batch %s: entry %s: TEL entries can't carry addenda", batch.ID(), entry.ID())
		}
		sequence := entry.TraceSequence()
		if sequence == 0 {
			sequence = i + 1
		}
		b.AddEntry(createEntryDetail(batch, entry, sequence))
	}

	b.SetControl(ach.NewBatchControl())

	if err := b.Create(); err != nil {
		return nil, fmt.Errorf("batch %s: %v", batch.ID(), err)
	}
	return b, nil
}
