// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"
	metric "github.com/luxfi/metric"
)

type timestampKey struct{}

// interceptor records per-method request counts, time spent, and error
// counts for the RPC server.
type interceptor struct {
	requests  metric.CounterVec
	errors    metric.CounterVec
	timeSpent metric.GaugeVec
}

func newInterceptor(registry metric.Registry) *interceptor {
	m := metric.NewWithRegistry("api", registry)
	labels := []string{"method"}
	return &interceptor{
		requests:  m.NewCounterVec("requests", "Number of requests handled, by method", labels),
		errors:    m.NewCounterVec("request_errors", "Number of requests that returned an error, by method", labels),
		timeSpent: m.NewGaugeVec("request_time_ns", "Nanoseconds spent handling requests, by method", labels),
	}
}

func (*interceptor) interceptRequest(i *rpc.RequestInfo) *http.Request {
	ctx := context.WithValue(i.Request.Context(), timestampKey{}, time.Now())
	return i.Request.WithContext(ctx)
}

func (in *interceptor) afterRequest(i *rpc.RequestInfo) {
	start, ok := i.Request.Context().Value(timestampKey{}).(time.Time)
	if !ok {
		return
	}

	labels := metric.Labels{"method": i.Method}
	in.requests.With(labels).Inc()
	in.timeSpent.With(labels).Add(float64(time.Since(start)))
	if i.Error != nil {
		in.errors.With(labels).Inc()
	}
}
