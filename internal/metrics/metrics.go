// Copyright © 2024 AgriTrace Contributors
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "batchledger"

type Metrics interface {
	Registry() *prometheus.Registry
	IncCommitted(kind string)
	IncRejected(kind string)
	ObserveCommitLatency(kind string, duration time.Duration)
}

type metricsManager struct {
	ctx           context.Context
	registry      *prometheus.Registry
	committed     *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	commitLatency *prometheus.HistogramVec
}

func NewMetricsManager(ctx context.Context) Metrics {
	mm := &metricsManager{
		ctx:      ctx,
		registry: prometheus.NewRegistry(),
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "mutations_committed_total",
			Help:      "Mutations durably committed, by mutation kind",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "mutations_rejected_total",
			Help:      "Mutations rejected by validation, by mutation kind",
		}, []string{"kind"}),
		commitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "commit_latency_seconds",
			Help:      "Time from submission to durable commit, by mutation kind",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	mm.registry.MustRegister(mm.committed, mm.rejected, mm.commitLatency)
	return mm
}

func (mm *metricsManager) Registry() *prometheus.Registry {
	return mm.registry
}

func (mm *metricsManager) IncCommitted(kind string) {
	mm.committed.WithLabelValues(kind).Inc()
}

func (mm *metricsManager) IncRejected(kind string) {
	mm.rejected.WithLabelValues(kind).Inc()
}

func (mm *metricsManager) ObserveCommitLatency(kind string, duration time.Duration) {
	mm.commitLatency.WithLabelValues(kind).Observe(duration.Seconds())
}
