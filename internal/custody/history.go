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
	"sort"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/log"

	"github.com/agritrace/batchledger/internal/ledger"
	"github.com/agritrace/batchledger/pkg/types"
)

// HistoryEntry is one normalized event in the merged timeline of a batch
type HistoryEntry struct {
	Kind           types.Enum[ledger.EventKind]    `json:"kind"`
	Sequence       int64                           `json:"sequence"`
	Submission     uuid.UUID                       `json:"submission"`
	Actor          types.AccountID                 `json:"actor"`
	Created        types.Timestamp                 `json:"created"`
	Owner          *types.AccountID                `json:"owner,omitempty"`
	FromOwner      *types.AccountID                `json:"fromOwner,omitempty"`
	ToOwner        *types.AccountID                `json:"toOwner,omitempty"`
	NewStatus      *types.Enum[ledger.BatchStatus] `json:"newStatus,omitempty"`
	OriginLocation string                          `json:"originLocation"`
	QuantityKg     uint64                          `json:"quantityKg"`
}

type kindQueryResult struct {
	events []*ledger.Event
	err    error
}

// mergeHistory reconstructs the full timeline of a batch by running the three
// per-kind event queries concurrently, then merging on sequence position.
// Any query failure fails the whole merge - a partial timeline is never
// returned.
func (cm *manager) mergeHistory(ctx context.Context, batchID uint64) ([]*HistoryEntry, error) {
	queryCtx, cancelQueries := context.WithCancel(ctx)
	defer cancelQueries()

	kinds := []ledger.EventKind{
		ledger.EventKindBatchCreated,
		ledger.EventKindStatusUpdated,
		ledger.EventKindOwnershipTransferred,
	}
	results := make(chan *kindQueryResult)
	for _, k := range kinds {
		kind := k
		go func() {
			events, err := cm.l.QueryEvents(queryCtx, kind, batchID, 0, -1)
			results <- &kindQueryResult{events: events, err: err}
		}()
	}

	var events []*ledger.Event
	var firstErr error
	for range kinds {
		result := <-results
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
				cancelQueries() // abandon the queries still in flight
			}
			continue
		}
		events = append(events, result.events...)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// Each per-kind query is already ascending, the merged timeline just
	// needs one stable sort on the global sequence
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Sequence < events[j].Sequence
	})

	entries := make([]*HistoryEntry, len(events))
	for i, ev := range events {
		entry := &HistoryEntry{
			Kind:       ev.Kind,
			Sequence:   ev.Sequence,
			Submission: ev.Submission,
			Actor:      ev.Actor,
			Created:    ev.Created,
			Owner:      ev.Owner,
			FromOwner:  ev.FromOwner,
			ToOwner:    ev.ToOwner,
			NewStatus:  ev.NewStatus,
		}
		if ev.Kind.V() == ledger.EventKindBatchCreated {
			detail, err := cm.creation(ctx, batchID)
			if err != nil {
				return nil, err
			}
			entry.OriginLocation = detail.OriginLocation
			entry.QuantityKg = detail.QuantityKg
		}
		entries[i] = entry
	}
	log.L(ctx).Debugf("Merged %d events for batch %d", len(entries), batchID)
	return entries, nil
}
