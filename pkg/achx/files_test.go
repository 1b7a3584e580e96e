// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/moov-io/ach"
	"github.com/nexus/paymentrails/pkg/model"
	"github.com/nexus/paymentrails/pkg/nacha"

	"github.com/stretchr/testify/require"
)

var (
	odfi      = model.MustRoutingNumber("987654320")
	createdAt = time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
)

func makeEntry(t *testing.T, credit bool, routingNumber string, cents int, addenda string) nacha.Entry {
	t.Helper()

	amt, err := model.NewAmountFromInt("USD", cents)
	require.NoError(t, err)

	params := nacha.EntryParams{
		RoutingNumber:  model.MustRoutingNumber(routingNumber),
		AccountNumber:  "1234567",
		AccountType:    model.Savings,
		IndividualName: "Jane Doe",
		Amount:         *amt,
		Addenda:        addenda,
	}
	if credit {
		e, err := nacha.Credit(params)
		require.NoError(t, err)
		return e
	}
	e, err := nacha.Debit(params)
	require.NoError(t, err)
	return e
}

func makeBatch(t *testing.T, code model.StandardEntryClassCode, entries ...nacha.Entry) nacha.Batch {
	t.Helper()

	batch, err := nacha.NewBatch(nacha.BatchParams{
		StandardEntryClassCode:  code,
		CompanyName:             "Acme Corp",
		CompanyIdentification:   "1234567890",
		CompanyEntryDescription: "PAYROLL",
		ODFIRoutingNumber:       odfi,
		EffectiveEntryDate:      EffectiveEntryDate(createdAt, nil),
		Entries:                 entries,
	})
	require.NoError(t, err)
	return batch
}

func makeFile(t *testing.T, batches ...nacha.Batch) nacha.File {
	t.Helper()

	file, err := nacha.NewFile(nacha.FileParams{
		ImmediateDestination:     model.MustRoutingNumber("021000021"),
		ImmediateOrigin:          odfi,
		ImmediateDestinationName: "Their Bank",
		ImmediateOriginName:      "My Bank",
		CreatedAt:                createdAt,
	})
	require.NoError(t, err)

	for _, b := range batches {
		file, err = file.AddBatch(b)
		require.NoError(t, err)
	}
	return file
}

func TestFiles__ConstructFile(t *testing.T) {
	file := makeFile(t,
		makeBatch(t, model.PPD,
			makeEntry(t, true, "121042882", 12345, ""),
			makeEntry(t, false, "231380104", 6789, ""),
		),
		makeBatch(t, model.CCD,
			makeEntry(t, false, "273976369", 1, "invoice 42"),
		),
	)

	out, err := ConstructFile(file)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NoError(t, out.Validate())

	require.Equal(t, file.ID(), out.ID)
	require.Equal(t, "021000021", out.Header.ImmediateDestination)
	require.Equal(t, "987654320", out.Header.ImmediateOrigin)
	require.Equal(t, "250102", out.Header.FileCreationDate)
	require.Equal(t, "0304", out.Header.FileCreationTime)
	require.Equal(t, "A", out.Header.FileIDModifier)

	// control records agree with the file's own totals
	require.Equal(t, file.BatchCount(), out.Control.BatchCount)
	require.Equal(t, file.BlockCount(), out.Control.BlockCount)
	require.Equal(t, file.EntryAddendaCount(), out.Control.EntryAddendaCount)
	require.Equal(t, file.EntryHash(), out.Control.EntryHash)
	debits, credits := file.TotalDebits(), file.TotalCredits()
	require.Equal(t, debits.Int(), out.Control.TotalDebitEntryDollarAmountInFile)
	require.Equal(t, credits.Int(), out.Control.TotalCreditEntryDollarAmountInFile)

	require.Len(t, out.Batches, 2)
	for i, batch := range file.Batches() {
		bh, bc := out.Batches[i].GetHeader(), out.Batches[i].GetControl()
		require.Equal(t, i+1, bh.BatchNumber)
		require.Equal(t, batch.ServiceClassCode(), bh.ServiceClassCode)
		require.Equal(t, "98765432", bh.ODFIIdentification)
		require.Equal(t, "250103", bh.EffectiveEntryDate)
		require.Equal(t, batch.EntryHash(), bc.EntryHash)
		require.Equal(t, batch.EntryCount()+batch.AddendaCount(), bc.EntryAddendaCount)
	}
}

func TestFiles__Entries(t *testing.T) {
	file := makeFile(t,
		makeBatch(t, model.CCD,
			makeEntry(t, true, "121042882", 500, ""),
			makeEntry(t, true, "273976369", 700, "invoice 42"),
		),
	)

	out, err := ConstructFile(file)
	require.NoError(t, err)

	entries := out.Batches[0].GetEntries()
	require.Len(t, entries, 2)

	first, second := entries[0], entries[1]
	require.Equal(t, ach.SavingsCredit, first.TransactionCode)
	require.Equal(t, "12104288", first.RDFIIdentification)
	require.Equal(t, "2", first.CheckDigit)
	require.Equal(t, 500, first.Amount)
	require.Equal(t, "987654320000001", first.TraceNumber)
	require.Equal(t, 0, first.AddendaRecordIndicator)

	require.Equal(t, "987654320000002", second.TraceNumber)
	require.Equal(t, 1, second.AddendaRecordIndicator)
	require.Len(t, second.Addenda05, 1)
	require.Equal(t, "invoice 42", second.Addenda05[0].PaymentRelatedInformation)
	require.Equal(t, 2, second.Addenda05[0].EntryDetailSequenceNumber)
}

func TestFiles__TraceSequences(t *testing.T) {
	amt, err := model.NewAmountFromInt("USD", 100)
	require.NoError(t, err)

	var entries []nacha.Entry
	for _, seq := range []int{5, 17} {
		e, err := nacha.Debit(nacha.EntryParams{
			RoutingNumber:  model.MustRoutingNumber("121042882"),
			AccountNumber:  "1234567",
			AccountType:    model.Checking,
			IndividualName: "Jane Doe",
			Amount:         *amt,
			TraceSequence:  seq,
		})
		require.NoError(t, err)
		entries = append(entries, e)
	}

	out, err := ConstructFile(makeFile(t, makeBatch(t, model.PPD, entries...)))
	require.NoError(t, err)

	got := out.Batches[0].GetEntries()
	require.Equal(t, "987654320000005", got[0].TraceNumber)
	require.Equal(t, "987654320000017", got[1].TraceNumber)
}

func TestFiles__BlockCounts(t *testing.T) {
	for _, n := range []int{5, 6, 7, 16} {
		t.Run(fmt.Sprintf("entries=%d", n), func(t *testing.T) {
			var entries []nacha.Entry
			for i := 0; i < n; i++ {
				entries = append(entries, makeEntry(t, true, "121042882", 100+i, ""))
			}
			file := makeFile(t, makeBatch(t, model.PPD, entries...))

			out, err := ConstructFile(file)
			require.NoError(t, err)
			require.Equal(t, file.BlockCount(), out.Control.BlockCount)
			require.Equal(t, file.EntryHash(), out.Control.EntryHash)
		})
	}
}

func TestFiles__Unsupported(t *testing.T) {
	_, err := ConstructFile(makeFile(t))
	require.Error(t, err)

	iat := makeBatch(t, model.IAT, makeEntry(t, true, "121042882", 100, ""))
	_, err = ConstructFile(makeFile(t, iat))
	require.True(t, errors.Is(err, ErrUnsupportedSECCode))
}

func TestEffectiveEntryDate(t *testing.T) {
	// Friday posts on Monday
	friday := time.Date(2025, time.January, 3, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-01-06", EffectiveEntryDate(friday, nil).Format("2006-01-02"))

	tuesday := time.Date(2025, time.January, 7, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-01-08", EffectiveEntryDate(tuesday, nil).Format("2006-01-02"))

	// early Wednesday UTC is still Tuesday in New York
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	wednesday := time.Date(2025, time.January, 8, 2, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-01-08", EffectiveEntryDate(wednesday, loc).Format("2006-01-02"))
}
