// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nexus/paymentrails/pkg/audittrail"
	"github.com/nexus/paymentrails/pkg/config"
	"github.com/nexus/paymentrails/pkg/model"
	"github.com/nexus/paymentrails/pkg/nacha"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Empty()
	cfg.ODFI = config.ODFI{
		RoutingNumber: "987654320",
		Gateway: config.Gateway{
			OriginName:      "My Bank",
			Destination:     "021000021",
			DestinationName: "Federal Reserve Bank",
		},
	}
	return cfg
}

func testGenerator(t *testing.T, cfg *config.Config) (*Generator, *audittrail.MockStorage, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	cfg.Logger = log.NewLogfmtLogger(&logs)

	storage := &audittrail.MockStorage{}
	gen, err := New(cfg, storage)
	require.NoError(t, err)
	return gen, storage, &logs
}

func testBatch(t *testing.T, gen *Generator) nacha.Batch {
	t.Helper()

	amt, err := model.NewAmountFromInt("USD", 1247)
	require.NoError(t, err)

	entry, err := nacha.Credit(nacha.EntryParams{
		RoutingNumber:  model.MustRoutingNumber("273976369"),
		AccountNumber:  "1234567",
		AccountType:    model.Checking,
		IndividualName: "Jane Doe",
		Amount:         *amt,
		Addenda:        "invoice 42",
	})
	require.NoError(t, err)

	batch, err := nacha.NewBatch(nacha.BatchParams{
		StandardEntryClassCode:  model.PPD,
		CompanyName:             "Moov",
		CompanyIdentification:   "MOOVZZZZZZ",
		CompanyEntryDescription: "PAYROLL",
		ODFIRoutingNumber:       gen.ODFI(),
		EffectiveEntryDate:      gen.EffectiveEntryDate(createdAt),
		Entries:                 []nacha.Entry{entry},
	})
	require.NoError(t, err)
	return batch
}

func testFile(t *testing.T, gen *Generator) nacha.File {
	t.Helper()

	file, err := gen.NewFile("file-1", createdAt)
	require.NoError(t, err)
	file, err = file.AddBatch(testBatch(t, gen))
	require.NoError(t, err)
	return file
}

func TestGenerator__NewFile(t *testing.T) {
	cfg := testConfig()
	cfg.Files.FileIDModifier = "C"
	gen, _, _ := testGenerator(t, cfg)

	file, err := gen.NewFile("", createdAt)
	require.NoError(t, err)
	require.NotEmpty(t, file.ID())
	require.Equal(t, "021000021", file.ImmediateDestination().String())
	require.Equal(t, "987654320", file.ImmediateOrigin().String())
	require.Equal(t, "Federal Reserve Bank", file.DestinationName())
	require.Equal(t, "My Bank", file.OriginName())
	require.Equal(t, "C", file.FileIDModifier())
	require.Equal(t, model.FileGenerated, file.Status())
}

func TestGenerator__Timezone(t *testing.T) {
	cfg := testConfig()
	cfg.Files.Timezone = "America/New_York"
	gen, _, _ := testGenerator(t, cfg)

	// 03:04 UTC is the prior evening in New York
	file, err := gen.NewFile("", createdAt)
	require.NoError(t, err)
	require.Equal(t, "250101", file.FileCreationDate())
	require.Equal(t, "2204", file.FileCreationTime())
	require.Equal(t, "ACH_20250101_220405_A.txt", file.SuggestedFilename())
}

func TestGenerator__GatewayOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.ODFI.Gateway.Origin = "222371863"
	gen, _, _ := testGenerator(t, cfg)

	file, err := gen.NewFile("", createdAt)
	require.NoError(t, err)
	require.Equal(t, "222371863", file.ImmediateOrigin().String())
	require.Equal(t, "987654320", gen.ODFI().String())
}

func TestGenerator__GatewayOriginOnly(t *testing.T) {
	cfg := testConfig()
	cfg.ODFI.RoutingNumber = ""
	cfg.ODFI.Gateway.Origin = "222371863"
	gen, storage, _ := testGenerator(t, cfg)

	require.Equal(t, "222371863", gen.ODFI().String())

	file, err := gen.NewFile("", createdAt)
	require.NoError(t, err)
	file, err = file.AddBatch(testBatch(t, gen))
	require.NoError(t, err)
	require.Equal(t, "22237186", file.Batches()[0].ODFIRoutingNumber().ABA8())

	res, err := gen.Generate(context.Background(), file)
	require.NoError(t, err)
	require.Contains(t, string(res.Contents), "222371860000001")

	_, ok := storage.Saved(audittrail.Path(res.Filename, file.CreatedAt()))
	require.True(t, ok)
}

func TestGenerator__Generate(t *testing.T) {
	gen, storage, logs := testGenerator(t, testConfig())
	defer gen.Close()

	file := testFile(t, gen)
	res, err := gen.Generate(context.Background(), file)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, "ACH_20250102_030405_A.txt", res.Filename)
	require.True(t, strings.HasPrefix(string(res.Contents), "101 021000021 987654320250102"))
	require.Equal(t, file.EntryHash(), res.File.Control.EntryHash)
	require.Equal(t, file.BlockCount(), res.File.Control.BlockCount)

	saved, ok := storage.Saved("audit-trail/2025-01-02/ACH_20250102_030405_A.txt")
	require.True(t, ok)
	require.Equal(t, res.Contents, saved)

	require.Contains(t, logs.String(), "generated ACH_20250102_030405_A.txt")
	require.Contains(t, logs.String(), "file=file-1")
}

func TestGenerator__Base64(t *testing.T) {
	cfg := testConfig()
	cfg.Files.Output = &config.Output{Format: "base64"}
	gen, _, _ := testGenerator(t, cfg)

	res, err := gen.Generate(context.Background(), testFile(t, gen))
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(string(res.Contents))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(decoded), "101 021000021 987654320"))
}

func TestGenerator__BlobAuditTrail(t *testing.T) {
	cfg := testConfig()
	cfg.Files.AuditTrail = &config.AuditTrail{BucketURI: "mem://"}

	gen, err := New(cfg, nil)
	require.NoError(t, err)
	defer gen.Close()

	_, err = gen.Generate(context.Background(), testFile(t, gen))
	require.NoError(t, err)
}

func TestGenerator__FilenameTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Files.FilenameTemplate = `{{ .RoutingNumber }}-{{ date "20060102" }}-{{ .Modifier }}.ach`
	gen, storage, _ := testGenerator(t, cfg)

	res, err := gen.Generate(context.Background(), testFile(t, gen))
	require.NoError(t, err)
	require.Equal(t, "021000021-20250102-A.ach", res.Filename)

	_, ok := storage.Saved("audit-trail/2025-01-02/021000021-20250102-A.ach")
	require.True(t, ok)
}

func TestGenerator__GenerateErrors(t *testing.T) {
	gen, storage, logs := testGenerator(t, testConfig())

	// no batches
	empty, err := gen.NewFile("", createdAt)
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), empty)
	require.Error(t, err)
	require.Contains(t, logs.String(), "stage=construct")

	// already transmitted
	file := testFile(t, gen)
	transmitted, err := file.WithStatus(model.FileTransmitted)
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), transmitted)
	require.Error(t, err)

	// audit trail failure
	storage.Err = errors.New("bucket unavailable")
	_, err = gen.Generate(context.Background(), file)
	require.Error(t, err)
	require.True(t, errors.Is(err, storage.Err))
	require.Contains(t, logs.String(), "stage=audittrail")
}

func TestGenerator__Transition(t *testing.T) {
	gen, _, logs := testGenerator(t, testConfig())

	file := testFile(t, gen)
	transmitted, err := gen.Transition(file, model.FileTransmitted)
	require.NoError(t, err)
	require.Equal(t, model.FileTransmitted, transmitted.Status())
	require.Equal(t, model.FileGenerated, file.Status())
	require.Contains(t, logs.String(), "status=TRANSMITTED")

	acknowledged, err := gen.Transition(transmitted, model.FileAcknowledged)
	require.NoError(t, err)
	require.Equal(t, model.FileAcknowledged, acknowledged.Status())

	_, err = gen.Transition(acknowledged, model.FileRejected)
	var terr *model.TransitionError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, model.FileAcknowledged, terr.From)
}

func TestNew__Invalid(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)

	cfg := testConfig()
	cfg.ODFI.Gateway.Destination = ""
	_, err = New(cfg, nil)
	require.Error(t, err)

	cfg = testConfig()
	cfg.ODFI.RoutingNumber = ""
	_, err = New(cfg, nil)
	require.Error(t, err)

	cfg = testConfig()
	cfg.Files.Output = &config.Output{Format: "encrypted-bytes"}
	_, err = New(cfg, nil)
	require.Error(t, err)

	cfg = testConfig()
	cfg.Files.AuditTrail = &config.AuditTrail{BucketURI: "bad://"}
	_, err = New(cfg, nil)
	require.Error(t, err)
}
