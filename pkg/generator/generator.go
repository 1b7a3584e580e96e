// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moov-io/ach"
	"github.com/nexus/paymentrails/pkg/achx"
	"github.com/nexus/paymentrails/pkg/audittrail"
	"github.com/nexus/paymentrails/pkg/config"
	"github.com/nexus/paymentrails/pkg/model"
	"github.com/nexus/paymentrails/pkg/nacha"
	"github.com/nexus/paymentrails/pkg/output"

	"github.com/go-kit/kit/log"
)

// Generator renders nacha.Files for the configured ODFI and keeps a copy of
// each in the audit trail.
type Generator struct {
	logger log.Logger

	odfi        model.RoutingNumber
	origin      model.RoutingNumber
	destination model.RoutingNumber

	originName      string
	destinationName string

	modifier         string
	filenameTemplate string
	location         *time.Location

	formatter output.Formatter
	storage   audittrail.Storage
}

// Result is a generated file: its name, its rendered contents and the
// ach.File they were rendered from.
type Result struct {
	Filename string
	Contents []byte
	File     *ach.File
}

// New returns a Generator for cfg. A nil storage is created from the
// configured audit trail.
func New(cfg *config.Config, storage audittrail.Storage) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen := &Generator{
		logger:           cfg.Logger,
		originName:       cfg.ODFI.Gateway.OriginName,
		destinationName:  cfg.ODFI.Gateway.DestinationName,
		modifier:         cfg.Files.FileIDModifier,
		filenameTemplate: cfg.Files.FilenameTemplate,
		location:         cfg.Files.Location(),
		storage:          storage,
	}
	if gen.logger == nil {
		gen.logger = log.NewNopLogger()
	}

	var err error
	if cfg.ODFI.RoutingNumber != "" {
		if gen.odfi, err = model.NewRoutingNumber(cfg.ODFI.RoutingNumber); err != nil {
			return nil, fmt.Errorf("odfi: %v", err)
		}
	}
	gen.origin = gen.odfi
	if cfg.ODFI.Gateway.Origin != "" {
		if gen.origin, err = model.NewRoutingNumber(cfg.ODFI.Gateway.Origin); err != nil {
			return nil, fmt.Errorf("gateway origin: %v", err)
		}
	}
	if gen.origin.IsZero() {
		return nil, errors.New("missing odfi routing number or gateway origin")
	}
	if gen.odfi.IsZero() {
		gen.odfi = gen.origin
	}
	if cfg.ODFI.Gateway.Destination == "" {
		return nil, errors.New("missing gateway destination")
	}
	if gen.destination, err = model.NewRoutingNumber(cfg.ODFI.Gateway.Destination); err != nil {
		return nil, fmt.Errorf("gateway destination: %v", err)
	}

	if gen.formatter, err = output.NewFormatter(cfg.Files.Output); err != nil {
		return nil, err
	}
	if gen.storage == nil {
		if gen.storage, err = audittrail.NewStorage(cfg.Files.AuditTrail); err != nil {
			return nil, fmt.Errorf("audit trail: %v", err)
		}
	}
	return gen, nil
}

func (g *Generator) Close() error {
	if g == nil || g.storage == nil {
		return nil
	}
	return g.storage.Close()
}

// ODFI returns the configured originating DFI, or the gateway origin when
// no ODFI routing number is configured.
func (g *Generator) ODFI() model.RoutingNumber {
	return g.odfi
}

// EffectiveEntryDate returns the next banking day after now in the configured timezone.
func (g *Generator) EffectiveEntryDate(now time.Time) time.Time {
	return achx.EffectiveEntryDate(now, g.location)
}

// NewFile returns an empty file addressed from the gateway origin to its
// destination, created at createdAt in the configured timezone.
func (g *Generator) NewFile(id string, createdAt time.Time) (nacha.File, error) {
	return nacha.NewFile(nacha.FileParams{
		ID:                       id,
		ImmediateDestination:     g.destination,
		ImmediateOrigin:          g.origin,
		ImmediateDestinationName: g.destinationName,
		ImmediateOriginName:      g.originName,
		CreatedAt:                createdAt.In(g.location),
		FileIDModifier:           g.modifier,
	})
}

// Generate renders file and saves it to the audit trail.
func (g *Generator) Generate(ctx context.Context, file nacha.File) (*Result, error) {
	if file.Status() != model.FileGenerated {
		return nil, g.fail("status", file, fmt.Errorf("file is %s", file.Status()))
	}

	out, err := achx.ConstructFile(file)
	if err != nil {
		return nil, g.fail("construct", file, err)
	}

	var buf bytes.Buffer
	if err := g.formatter.Format(&buf, out); err != nil {
		return nil, g.fail("format", file, err)
	}

	filename, err := RenderACHFilename(g.filenameTemplate, file)
	if err != nil {
		return nil, g.fail("filename", file, err)
	}

	if err := g.storage.SaveFile(ctx, filename, file.CreatedAt(), buf.Bytes()); err != nil {
		return nil, g.fail("audittrail", file, err)
	}

	entries := 0
	filesGenerated.With("destination", file.ImmediateDestination().String()).Add(1)
	for _, b := range file.Batches() {
		entries += b.EntryCount()
		entriesGenerated.With("sec_code", string(b.StandardEntryClassCode())).Add(float64(b.EntryCount()))
	}

	g.logger.Log(
		"generator", fmt.Sprintf("generated %s", filename),
		"file", file.ID(),
		"batches", file.BatchCount(),
		"entries", entries,
		"records", file.RecordCount(),
	)

	return &Result{
		Filename: filename,
		Contents: buf.Bytes(),
		File:     out,
	}, nil
}

func (g *Generator) fail(stage string, file nacha.File, err error) error {
	generationErrors.With("stage", stage).Add(1)
	g.logger.Log("generator", fmt.Sprintf("ERROR generating file: %v", err), "file", file.ID(), "stage", stage)
	return fmt.Errorf("generate %s: %w", stage, err)
}

// Transition moves file to status, see nacha.File.WithStatus.
func (g *Generator) Transition(file nacha.File, status model.FileStatus) (nacha.File, error) {
	next, err := file.WithStatus(status)
	if err != nil {
		g.logger.Log("generator", fmt.Sprintf("ERROR: %v", err), "file", file.ID())
		return nacha.File{}, err
	}

	statusTransitions.With("from", string(file.Status()), "to", string(status)).Add(1)
	g.logger.Log("generator", "file status changed", "file", file.ID(), "status", string(status))

	return next, nil
}
