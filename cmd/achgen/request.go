// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nexus/paymentrails/pkg/generator"
	"github.com/nexus/paymentrails/pkg/model"
	"github.com/nexus/paymentrails/pkg/nacha"
)

// fileRequest describes the batches of one file to generate.
type fileRequest struct {
	ID      string         `json:"id"`
	Batches []batchRequest `json:"batches"`
}

type batchRequest struct {
	ID                       string                       `json:"id"`
	StandardEntryClassCode   model.StandardEntryClassCode `json:"secCode"`
	CompanyName              string                       `json:"companyName"`
	CompanyIdentification    string                       `json:"companyIdentification"`
	CompanyEntryDescription  string                       `json:"companyEntryDescription"`
	CompanyDiscretionaryData string                       `json:"companyDiscretionaryData"`

	// EffectiveEntryDate is YYYY-MM-DD, the next banking day when empty.
	EffectiveEntryDate string `json:"effectiveEntryDate"`

	Entries []entryRequest `json:"entries"`
}

type entryRequest struct {
	ID                   string                `json:"id"`
	Type                 model.TransactionType `json:"type"`
	RoutingNumber        model.RoutingNumber   `json:"routingNumber"`
	AccountNumber        string                `json:"accountNumber"`
	AccountType          model.AccountType     `json:"accountType"`
	Name                 string                `json:"name"`
	IdentificationNumber string                `json:"identificationNumber"`
	Amount               model.Amount          `json:"amount"`
	Addenda              string                `json:"addenda"`
	DiscretionaryData    string                `json:"discretionaryData"`
	TraceSequence        int                   `json:"traceSequence"`
	Prenote              bool                  `json:"prenote"`
}

func readRequest(r io.Reader) (*fileRequest, error) {
	var req fileRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("problem reading request: %v", err)
	}
	if len(req.Batches) == 0 {
		return nil, fmt.Errorf("request %s has no batches", req.ID)
	}
	return &req, nil
}

// buildFile assembles the requested file as created at now.
func buildFile(gen *generator.Generator, req *fileRequest, now time.Time) (nacha.File, error) {
	file, err := gen.NewFile(req.ID, now)
	if err != nil {
		return nacha.File{}, err
	}
	for i := range req.Batches {
		batch, err := buildBatch(gen, req.Batches[i], now)
		if err != nil {
			return nacha.File{}, fmt.Errorf("batch #%d: %v", i+1, err)
		}
		if file, err = file.AddBatch(batch); err != nil {
			return nacha.File{}, fmt.Errorf("batch #%d: %v", i+1, err)
		}
	}
	return file, nil
}

func buildBatch(gen *generator.Generator, req batchRequest, now time.Time) (nacha.Batch, error) {
	effective := gen.EffectiveEntryDate(now)
	if req.EffectiveEntryDate != "" {
		t, err := time.Parse("2006-01-02", req.EffectiveEntryDate)
		if err != nil {
			return nacha.Batch{}, fmt.Errorf("effective entry date: %v", err)
		}
		effective = t
	}

	params := nacha.BatchParams{
		ID:                       req.ID,
		StandardEntryClassCode:   req.StandardEntryClassCode,
		CompanyName:              req.CompanyName,
		CompanyIdentification:    req.CompanyIdentification,
		CompanyEntryDescription:  req.CompanyEntryDescription,
		CompanyDiscretionaryData: req.CompanyDiscretionaryData,
		ODFIRoutingNumber:        gen.ODFI(),
		EffectiveEntryDate:       effective,
	}
	for i := range req.Entries {
		entry, err := buildEntry(req.Entries[i])
		if err != nil {
			return nacha.Batch{}, fmt.Errorf("entry #%d: %v", i+1, err)
		}
		params.Entries = append(params.Entries, entry)
	}
	return nacha.NewBatch(params)
}

func buildEntry(req entryRequest) (nacha.Entry, error) {
	params := nacha.EntryParams{
		ID:                   req.ID,
		RoutingNumber:        req.RoutingNumber,
		AccountNumber:        req.AccountNumber,
		AccountType:          req.AccountType,
		IndividualName:       req.Name,
		IdentificationNumber: req.IdentificationNumber,
		TraceSequence:        req.TraceSequence,
		Amount:               req.Amount,
		Addenda:              req.Addenda,
		DiscretionaryData:    req.DiscretionaryData,
		Prenote:              req.Prenote,
	}
	switch req.Type {
	case model.Credit:
		return nacha.Credit(params)
	case model.Debit:
		return nacha.Debit(params)
	}
	return nacha.Entry{}, fmt.Errorf("unknown entry type %q", req.Type)
}
