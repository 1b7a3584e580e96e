// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/nexus/paymentrails/pkg/nacha"
)

type Files struct {
	// FileIDModifier is applied to every generated file, defaults to "A".
	FileIDModifier string `yaml:"file_id_modifier" mapstructure:"file_id_modifier"`

	// Timezone files are created and effective dates are computed in.
	// Defaults to UTC.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`

	// FilenameTemplate is a text/template rendering archived filenames.
	// Without one files are named ACH_<YYYYMMDD>_<HHMMSS>_<modifier>.txt
	FilenameTemplate string `yaml:"filename_template" mapstructure:"filename_template"`

	Output     *Output     `yaml:"output" mapstructure:"output"`
	AuditTrail *AuditTrail `yaml:"audit_trail" mapstructure:"audit_trail"`
}

func (cfg Files) Validate() error {
	if cfg.FileIDModifier != "" {
		if err := nacha.ValidateFileIDModifier(cfg.FileIDModifier); err != nil {
			return err
		}
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("timezone: %v", err)
	}
	if cfg.FilenameTemplate != "" {
		if _, err := template.New("filename").Funcs(FilenameFunctions(time.Time{})).Parse(cfg.FilenameTemplate); err != nil {
			return fmt.Errorf("filename template: %v", err)
		}
	}
	if err := cfg.Output.Validate(); err != nil {
		return fmt.Errorf("output: %v", err)
	}
	if err := cfg.AuditTrail.Validate(); err != nil {
		return fmt.Errorf("audit-trail: %v", err)
	}
	return nil
}

// Location returns the configured timezone, or UTC when it's unset or invalid.
func (cfg Files) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type Output struct {
	Format string
}

func (cfg *Output) Validate() error {
	if cfg == nil || cfg.Format == "" {
		return nil
	}
	switch strings.ToLower(cfg.Format) {
	case "nacha", "base64", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q", cfg.Format)
}

type AuditTrail struct {
	BucketURI string `yaml:"bucket_uri" mapstructure:"bucket_uri"`
}

func (cfg *AuditTrail) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.BucketURI == "" {
		return errors.New("missing bucket_uri")
	}
	return nil
}

// FilenameFunctions are the functions available to a FilenameTemplate. date
// formats the file's creation time.
func FilenameFunctions(createdAt time.Time) template.FuncMap {
	return map[string]interface{}{
		"date": func(pattern string) string {
			return createdAt.Format(pattern)
		},
		"env": func(name string) string {
			return os.Getenv(name)
		},
	}
}
