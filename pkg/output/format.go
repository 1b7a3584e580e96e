// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moov-io/ach"
	"github.com/nexus/paymentrails/pkg/config"
)

// Formatter is a structure for encoding an ACH file.
type Formatter interface {
	Format(buf *bytes.Buffer, file *ach.File) error
}

func NewFormatter(cfg *config.Output) (Formatter, error) {
	if cfg == nil || cfg.Format == "" {
		return &NACHA{}, nil
	}
	switch {
	case strings.EqualFold(cfg.Format, "base64"):
		return &Base64{}, nil

	case strings.EqualFold(cfg.Format, "json"):
		return &JSON{}, nil

	case strings.EqualFold(cfg.Format, "nacha"):
		return &NACHA{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", cfg.Format)
}
