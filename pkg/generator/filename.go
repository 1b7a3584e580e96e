// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package generator

import (
	"bytes"
	"errors"
	"text/template"

	"github.com/nexus/paymentrails/pkg/config"
	"github.com/nexus/paymentrails/pkg/nacha"
)

type FilenameData struct {
	// RoutingNumber is the file's immediate destination
	RoutingNumber string

	Modifier  string
	Suggested string
}

// RenderACHFilename names file from raw, a text/template, or returns the
// file's suggested filename when raw is empty.
func RenderACHFilename(raw string, file nacha.File) (string, error) {
	if raw == "" {
		return file.SuggestedFilename(), nil
	}

	t, err := template.New(file.ID()).Funcs(config.FilenameFunctions(file.CreatedAt())).Parse(raw)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, FilenameData{
		RoutingNumber: file.ImmediateDestination().String(),
		Modifier:      file.FileIDModifier(),
		Suggested:     file.SuggestedFilename(),
	})
	if err != nil {
		return "", err
	}
	if buf.Len() == 0 {
		return "", errors.New("filename template rendered an empty filename")
	}
	return buf.String(), nil
}
