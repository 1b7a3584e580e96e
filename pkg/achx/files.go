// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"errors"
	"fmt"

	"github.com/moov-io/ach"
	"github.com/nexus/paymentrails/pkg/nacha"
)

// ConstructFile renders file as an ach.File with its batch and file controls
// computed and validated.
func ConstructFile(file nacha.File) (*ach.File, error) {
	if file.BatchCount() == 0 {
		return nil, errors.New("constructFile: file has no batches")
	}

	out := ach.NewFile()
	out.ID = file.ID()
	out.Control = ach.NewFileControl()

	// File Header
	out.Header.ID = file.ID()
	out.Header.ImmediateOrigin = file.ImmediateOrigin().String()
	out.Header.ImmediateDestination = file.ImmediateDestination().String()
	out.Header.ImmediateOriginName = file.FormattedOriginName()
	out.Header.ImmediateDestinationName = file.FormattedDestinationName()
	out.Header.FileCreationDate = file.FileCreationDate() // YYMMDD
	out.Header.FileCreationTime = file.FileCreationTime() // HHMM
	out.Header.FileIDModifier = file.FileIDModifier()

	for _, batch := range file.Batches() {
		b, err := createBatch(batch)
		if err != nil {
			return nil, fmt.Errorf("constructFile: %w", err)
		}
		out.AddBatch(b)
	}

	if err := out.Create(); err != nil {
		return nil, fmt.Errorf("constructFile: %v", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("constructFile: %v", err)
	}
	return out, nil
}
