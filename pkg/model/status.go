// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FileStatus is where an ACH file is in its lifecycle with the ODFI.
type FileStatus string

const (
	FileGenerated    FileStatus = "GENERATED"
	FileTransmitted  FileStatus = "TRANSMITTED"
	FileAcknowledged FileStatus = "ACKNOWLEDGED"
	FileRejected     FileStatus = "REJECTED"
)

// fileTransitions lists every status reachable from a given status.
// ACKNOWLEDGED and REJECTED are terminal.
var fileTransitions = map[FileStatus][]FileStatus{
	FileGenerated:   {FileTransmitted},
	FileTransmitted: {FileAcknowledged, FileRejected},
}

func (fs FileStatus) Validate() error {
	switch fs {
	case FileGenerated, FileTransmitted, FileAcknowledged, FileRejected:
		return nil
	default:
		return fmt.Errorf("FileStatus(%s) is invalid", fs)
	}
}

// Terminal returns true when no status can follow fs.
func (fs FileStatus) Terminal() bool {
	return len(fileTransitions[fs]) == 0
}

// CanTransitionTo returns true if a file in fs may move to next.
func (fs FileStatus) CanTransitionTo(next FileStatus) bool {
	for _, allowed := range fileTransitions[fs] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (fs *FileStatus) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*fs = FileStatus(strings.ToUpper(s))
	return fs.Validate()
}

// TransitionError is returned when a file is asked to move between two
// statuses which aren't connected.
type TransitionError struct {
	From FileStatus
	To   FileStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid file status transition from %s to %s", e.From, e.To)
}
