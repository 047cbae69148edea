// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"github.com/luxfi/metric"
)

type hostMetrics struct {
	numCalls, numNestedCalls, numReverts, numDeploys metric.Counter
}

func newMetrics() *hostMetrics {
	m := &hostMetrics{}
	m.numCalls = metric.NewCounter(metric.CounterOpts{
		Name: "host_calls",
		Help: "Number of externally submitted contract calls",
	})
	m.numNestedCalls = metric.NewCounter(metric.CounterOpts{
		Name: "host_nested_calls",
		Help: "Number of cross-contract calls dispatched by contracts",
	})
	m.numReverts = metric.NewCounter(metric.CounterOpts{
		Name: "host_reverts",
		Help: "Number of call frames that failed and were rolled back",
	})
	m.numDeploys = metric.NewCounter(metric.CounterOpts{
		Name: "host_deploys",
		Help: "Number of contracts deployed",
	})
	// Metrics are self-registering when created with NewCounter.
	return m
}
