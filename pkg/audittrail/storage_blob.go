// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package audittrail

import (
	"context"
	"fmt"
	"time"

	"github.com/nexus/paymentrails/pkg/config"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// blobStorage implements Storage with gocloud.dev/blob which allows
// clients to use AWS S3, GCP Storage, and Azure Storage.
type blobStorage struct {
	bucket *blob.Bucket
}

func newBlobStorage(cfg *config.AuditTrail) (*blobStorage, error) {
	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURI)
	if err != nil {
		return nil, err
	}
	return &blobStorage{bucket: bucket}, nil
}

func (bs *blobStorage) Close() error {
	if bs == nil {
		return nil
	}
	return bs.bucket.Close()
}

func (bs *blobStorage) SaveFile(ctx context.Context, filename string, createdAt time.Time, contents []byte) error {
	w, err := bs.bucket.NewWriter(ctx, Path(filename, createdAt), &blob.WriterOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return err
	}

	_, copyErr := w.Write(contents)
	closeErr := w.Close()

	if copyErr != nil || closeErr != nil {
		return fmt.Errorf("copyErr=%v closeErr=%v", copyErr, closeErr)
	}

	return nil
}
