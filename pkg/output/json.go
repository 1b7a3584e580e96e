// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/moov-io/ach"
)

// JSON renders the file in moov-io/ach's JSON representation.
type JSON struct{}

func (*JSON) Format(buf *bytes.Buffer, file *ach.File) error {
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("unable to encode ACH file as JSON: %v", err)
	}
	return nil
}
