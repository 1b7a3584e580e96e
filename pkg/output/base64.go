// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"encoding/base64"

	"github.com/moov-io/ach"
)

type Base64 struct{}

// Format encodes the file with NACHA formatting and then Base64 encodes the result.
func (*Base64) Format(buf *bytes.Buffer, file *ach.File) error {
	var buf2 bytes.Buffer

	nacha := &NACHA{}
	if err := nacha.Format(&buf2, file); err != nil {
		return err
	}

	buf.WriteString(base64.StdEncoding.EncodeToString(buf2.Bytes()))
	return nil
}
