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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/batchledger/internal/ledger"
	"github.com/agritrace/batchledger/internal/metrics"
	"github.com/agritrace/batchledger/internal/persistence"
)

func newTestManager(t *testing.T) (context.Context, Manager, func()) {
	ctx := context.Background()
	p, pDone, err := persistence.NewUnitTestPersistence(ctx, "../../db/migrations/sqlite")
	require.NoError(t, err)
	bl := ledger.NewLedger(ctx, &ledger.Config{}, p)
	require.NoError(t, bl.Start())
	cm := NewManager(ctx, &Config{}, bl, metrics.NewMetricsManager(ctx))
	return ctx, cm, func() {
		bl.Stop()
		pDone()
	}
}

func TestCustodyChainScenario(t *testing.T) {
	ctx, cm, done := newTestManager(t)
	defer done()

	// A farmer registers a new harvest batch
	receipt, err := cm.CreateBatch(ctx, "farmer1", 101, "Oyo State", 250)
	require.NoError(t, err)
	assert.Equal(t, "farmer1", receipt.Batch.CurrentOwner.String())
	assert.Equal(t, ledger.BatchStatusCreated, receipt.Batch.Status.V())

	// The farmer processes it, hands it to a processor, who moves it
	_, err = cm.UpdateStatus(ctx, "farmer1", 101, 1)
	require.NoError(t, err)
	_, err = cm.TransferOwnership(ctx, "farmer1", 101, "processor1")
	require.NoError(t, err)
	_, err = cm.UpdateStatus(ctx, "processor1", 101, 2)
	require.NoError(t, err)
	_, err = cm.TransferOwnership(ctx, "processor1", 101, "retailer1")
	require.NoError(t, err)
	_, err = cm.UpdateStatus(ctx, "retailer1", 101, 3)
	require.NoError(t, err)

	view, err := cm.Lookup(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "retailer1", view.Batch.CurrentOwner.String())
	assert.Equal(t, ledger.BatchStatusDelivered, view.Batch.Status.V())
	assert.Equal(t, "Oyo State", view.Batch.OriginLocation)
	assert.Equal(t, uint64(250), view.Batch.QuantityKg)

	// One created + three status + two transfers, strictly ascending
	require.Len(t, view.History, 6)
	for i, entry := range view.History {
		assert.Equal(t, int64(i+1), entry.Sequence)
	}
	assert.Equal(t, ledger.EventKindBatchCreated, view.History[0].Kind.V())
	assert.Equal(t, "Oyo State", view.History[0].OriginLocation)
	assert.Equal(t, uint64(250), view.History[0].QuantityKg)
	assert.Equal(t, ledger.EventKindStatusUpdated, view.History[1].Kind.V())
	assert.Equal(t, ledger.EventKindOwnershipTransferred, view.History[2].Kind.V())
	assert.Equal(t, "processor1", view.History[2].ToOwner.String())
	assert.Equal(t, ledger.EventKindOwnershipTransferred, view.History[4].Kind.V())
	assert.Equal(t, "retailer1", view.History[4].ToOwner.String())
	assert.Equal(t, ledger.BatchStatusDelivered, view.History[5].NewStatus.V())
}

func TestBoundaryNormalization(t *testing.T) {
	ctx, cm, done := newTestManager(t)
	defer done()

	_, err := cm.CreateBatch(ctx, "  ", 1, "Oyo State", 10)
	assert.Regexp(t, "BL010003", err)

	_, err = cm.CreateBatch(ctx, "farmer1", 1, "   ", 10)
	assert.Regexp(t, "BL011100", err)

	// Origin is trimmed before commit
	_, err = cm.CreateBatch(ctx, " farmer1 ", 1, "  Oyo State  ", 10)
	require.NoError(t, err)
	view, err := cm.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Oyo State", view.Batch.OriginLocation)
	assert.Equal(t, "farmer1", view.Batch.CurrentOwner.String())

	_, err = cm.TransferOwnership(ctx, "farmer1", 1, "  ")
	assert.Regexp(t, "BL011102", err)

	_, err = cm.UpdateStatus(ctx, "farmer1", 1, 4)
	assert.Regexp(t, "BL011101.*4", err)
	_, err = cm.UpdateStatus(ctx, "farmer1", 1, -1)
	assert.Regexp(t, "BL011101", err)
}

func TestBatchIDZero(t *testing.T) {
	ctx, cm, done := newTestManager(t)
	defer done()

	// Zero is a legitimate batch identifier
	receipt, err := cm.CreateBatch(ctx, "farmer1", 0, "Oyo State", 250)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), receipt.Batch.BatchID)

	view, err := cm.Lookup(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "farmer1", view.Batch.CurrentOwner.String())
	require.Len(t, view.History, 1)
	assert.Equal(t, ledger.EventKindBatchCreated, view.History[0].Kind.V())
}

func TestLookupIdempotent(t *testing.T) {
	ctx, cm, done := newTestManager(t)
	defer done()

	_, err := cm.CreateBatch(ctx, "farmer1", 101, "Oyo State", 250)
	require.NoError(t, err)
	_, err = cm.UpdateStatus(ctx, "farmer1", 101, 1)
	require.NoError(t, err)
	_, err = cm.TransferOwnership(ctx, "farmer1", 101, "processor1")
	require.NoError(t, err)

	// With no intervening mutation, repeated lookups observe the identical
	// record and timeline
	view1, err := cm.Lookup(ctx, 101)
	require.NoError(t, err)
	view2, err := cm.Lookup(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, view1.Batch, view2.Batch)
	assert.Equal(t, view1.History, view2.History)
}

func TestLookupNotFound(t *testing.T) {
	ctx, cm, done := newTestManager(t)
	defer done()

	_, err := cm.Lookup(ctx, 999)
	assert.Regexp(t, "BL011201.*999", err)
}

func TestStatusLabels(t *testing.T) {
	_, cm, done := newTestManager(t)
	defer done()

	assert.Equal(t, []string{"CREATED", "PROCESSED", "IN_TRANSIT", "DELIVERED"}, cm.StatusLabels())
}
