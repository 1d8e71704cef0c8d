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

package custody

import (
	"context"
	"strings"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"

	"github.com/agritrace/batchledger/internal/cache"
	"github.com/agritrace/batchledger/internal/ledger"
	"github.com/agritrace/batchledger/internal/metrics"
	"github.com/agritrace/batchledger/internal/msgs"
	"github.com/agritrace/batchledger/pkg/types"
)

// Manager is the operation surface of the custody chain. It normalizes all
// caller input before submission; authorization itself happens solely inside
// the serialized commit, against committed state.
type Manager interface {
	CreateBatch(ctx context.Context, actor string, batchID uint64, originLocation string, quantityKg uint64) (*ledger.CommitReceipt, error)
	TransferOwnership(ctx context.Context, actor string, batchID uint64, newOwner string) (*ledger.CommitReceipt, error)
	UpdateStatus(ctx context.Context, actor string, batchID uint64, statusIndex int) (*ledger.CommitReceipt, error)
	Lookup(ctx context.Context, batchID uint64) (*BatchView, error)
	StatusLabels() []string
}

// BatchView is the result of a lookup: the current record plus the full
// merged event timeline
type BatchView struct {
	Batch   *ledger.Batch   `json:"batch"`
	History []*HistoryEntry `json:"history"`
}

// creationDetail caches the immutable creation fields of a batch, used to
// annotate created events in history. Never used for the record itself.
type creationDetail struct {
	OriginLocation string
	QuantityKg     uint64
}

type manager struct {
	l             ledger.Ledger
	metrics       metrics.Metrics
	creationCache cache.Cache[uint64, *creationDetail]
}

func NewManager(ctx context.Context, conf *Config, l ledger.Ledger, m metrics.Metrics) Manager {
	return &manager{
		l:             l,
		metrics:       m,
		creationCache: cache.NewCache[uint64, *creationDetail](&conf.CreationCache, CreationCacheDefaults),
	}
}

func (cm *manager) CreateBatch(ctx context.Context, actor string, batchID uint64, originLocation string, quantityKg uint64) (*ledger.CommitReceipt, error) {
	actorID, err := types.ParseAccountID(ctx, actor)
	if err != nil {
		return nil, err
	}
	originLocation = strings.TrimSpace(originLocation)
	if originLocation == "" {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidOriginLocation)
	}
	return cm.submit(ctx, &ledger.Mutation{
		Kind:           ledger.MutationKindCreate,
		BatchID:        batchID,
		Actor:          actorID,
		OriginLocation: originLocation,
		QuantityKg:     quantityKg,
	})
}

func (cm *manager) TransferOwnership(ctx context.Context, actor string, batchID uint64, newOwner string) (*ledger.CommitReceipt, error) {
	actorID, err := types.ParseAccountID(ctx, actor)
	if err != nil {
		return nil, err
	}
	newOwnerID, err := types.ParseAccountID(ctx, newOwner)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidNewOwner, batchID, newOwner)
	}
	return cm.submit(ctx, &ledger.Mutation{
		Kind:     ledger.MutationKindTransfer,
		BatchID:  batchID,
		Actor:    actorID,
		NewOwner: newOwnerID,
	})
}

func (cm *manager) UpdateStatus(ctx context.Context, actor string, batchID uint64, statusIndex int) (*ledger.CommitReceipt, error) {
	actorID, err := types.ParseAccountID(ctx, actor)
	if err != nil {
		return nil, err
	}
	newStatus, err := ledger.BatchStatusFromIndex(ctx, statusIndex)
	if err != nil {
		return nil, err
	}
	return cm.submit(ctx, &ledger.Mutation{
		Kind:      ledger.MutationKindSetStatus,
		BatchID:   batchID,
		Actor:     actorID,
		NewStatus: newStatus,
	})
}

func (cm *manager) submit(ctx context.Context, mutation *ledger.Mutation) (*ledger.CommitReceipt, error) {
	startTime := time.Now()
	receipt, err := cm.l.Submit(ctx, mutation)
	if err != nil {
		cm.metrics.IncRejected(string(mutation.Kind))
		return nil, err
	}
	cm.metrics.IncCommitted(string(mutation.Kind))
	cm.metrics.ObserveCommitLatency(string(mutation.Kind), time.Since(startTime))
	if mutation.Kind == ledger.MutationKindCreate {
		cm.creationCache.Set(mutation.BatchID, &creationDetail{
			OriginLocation: mutation.OriginLocation,
			QuantityKg:     mutation.QuantityKg,
		})
	}
	log.L(ctx).Infof("Committed %s for batch %d (submission=%s,sequence=%d)", mutation.Kind, mutation.BatchID, receipt.Submission, receipt.Sequence)
	return receipt, nil
}

func (cm *manager) Lookup(ctx context.Context, batchID uint64) (*BatchView, error) {
	// The record is always a fresh read - a missing batch propagates as-is
	batch, err := cm.l.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	history, err := cm.mergeHistory(ctx, batchID)
	if err != nil {
		// No partial timelines - the whole lookup degrades to unavailable
		return nil, i18n.WrapError(ctx, err, msgs.MsgHistoryUnavailable, batchID)
	}
	return &BatchView{
		Batch:   batch,
		History: history,
	}, nil
}

// StatusLabels returns the display labels for each status index, in index
// order
func (cm *manager) StatusLabels() []string {
	opts := ledger.BatchStatus("").Options()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = strings.ToUpper(o)
	}
	return labels
}

// creation returns the immutable creation fields, read-through cached
func (cm *manager) creation(ctx context.Context, batchID uint64) (*creationDetail, error) {
	if detail, ok := cm.creationCache.Get(batchID); ok {
		return detail, nil
	}
	batch, err := cm.l.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	detail := &creationDetail{
		OriginLocation: batch.OriginLocation,
		QuantityKg:     batch.QuantityKg,
	}
	cm.creationCache.Set(batchID, detail)
	return detail, nil
}
