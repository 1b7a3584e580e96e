// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package generator

import (
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	filesGenerated = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "ach_files_generated",
		Help: "Counter of ACH files generated",
	}, []string{"destination"})

	entriesGenerated = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "ach_entries_generated",
		Help: "Counter of ACH entries generated",
	}, []string{"sec_code"})

	generationErrors = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "ach_file_generation_errors",
		Help: "Counter of errors generating ACH files",
	}, []string{"stage"})

	statusTransitions = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "ach_file_status_transitions",
		Help: "Counter of ACH file status changes",
	}, []string{"from", "to"})
)
