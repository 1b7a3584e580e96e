// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"github.com/moov-io/ach"
	"github.com/nexus/paymentrails/pkg/model"
	"github.com/nexus/paymentrails/pkg/nacha"
)

// determineTransactionCode picks the entry's transaction code from its direction,
// account type and whether it's a prenotification.
func determineTransactionCode(entry nacha.Entry) int {
	switch entry.AccountType() {
	case model.Checking:
		switch {
		case entry.IsCredit() && entry.IsPrenote():
			return ach.CheckingPrenoteCredit
		case entry.IsCredit():
			return ach.CheckingCredit
		case entry.IsPrenote():
			return ach.CheckingPrenoteDebit
		default:
			return ach.CheckingDebit
		}
	case model.Savings:
		switch {
		case entry.IsCredit() && entry.IsPrenote():
			return ach.SavingsPrenoteCredit
		case entry.IsCredit():
			return ach.SavingsCredit
		case entry.IsPrenote():
			return ach.SavingsPrenoteDebit
		default:
			return ach.SavingsDebit
		}
	}
	return 0 // invalid, represents a logic bug
}

// createEntryDetail converts entry into a forward ach.EntryDetail. sequence is
// the entry's trace sequence within its batch.
func createEntryDetail(batch nacha.Batch, entry nacha.Entry, sequence int) *ach.EntryDetail {
	ed := ach.NewEntryDetail()
	ed.ID = entry.ID()

	amt := entry.Amount()
	ed.Amount = amt.Int()
	ed.TransactionCode = determineTransactionCode(entry)
	ed.RDFIIdentification = entry.RoutingNumber().ABA8()
	ed.CheckDigit = entry.RoutingNumber().CheckDigit()
	ed.DFIAccountNumber = entry.AccountNumber()
	ed.IdentificationNumber = entry.IdentificationNumber()
	ed.DiscretionaryData = entry.DiscretionaryData()
	ed.TraceNumber = TraceNumber(batch.ODFIRoutingNumber().String(), sequence)
	ed.Category = ach.CategoryForward

	switch batch.StandardEntryClassCode() {
	case model.CTX:
		// CTX carries the addenda count and receiving company in the name field
		ed.SetCATXAddendaRecords(entry.AddendaCount())
		ed.SetCATXReceivingCompany(entry.IndividualName())
	case model.WEB, model.TEL:
		ed.IndividualName = entry.IndividualName()
		if ed.DiscretionaryData == "" {
			ed.DiscretionaryData = "S" // payment type code, single entry
		}
	default:
		ed.IndividualName = entry.IndividualName()
	}

	if entry.HasAddenda() {
		ed.AddendaRecordIndicator = 1

		addenda05 := ach.NewAddenda05()
		addenda05.ID = entry.ID()
		addenda05.PaymentRelatedInformation = entry.Addenda()
		addenda05.SequenceNumber = 1
		addenda05.EntryDetailSequenceNumber = sequence

		ed.AddAddenda05(addenda05)
	}

	return ed
}
