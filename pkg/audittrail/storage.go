// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package audittrail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexus/paymentrails/pkg/config"
)

// Storage is an interface for saving generated ACH files for records
// retention. This is often a requirement of agreements.
//
// File retention after upload is not part of this storage.
type Storage interface {
	// SaveFile copies the rendered ACH file to the configured file storage
	// under the day it was created.
	SaveFile(ctx context.Context, filename string, createdAt time.Time, contents []byte) error

	Close() error
}

func NewStorage(cfg *config.AuditTrail) (Storage, error) {
	if cfg == nil {
		return &MockStorage{}, nil
	}
	if cfg.BucketURI != "" {
		return newBlobStorage(cfg)
	}
	return nil, errors.New("unknown storage config")
}

// Path returns where a file is kept: a sub-path of the yyyy-mm-dd it was created.
func Path(filename string, createdAt time.Time) string {
	return fmt.Sprintf("audit-trail/%s/%s", createdAt.Format("2006-01-02"), filename)
}
