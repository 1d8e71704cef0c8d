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

package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/agritrace/batchledger/internal/confutil"
	"github.com/agritrace/batchledger/internal/msgs"
	"github.com/agritrace/batchledger/internal/persistence"
	"github.com/agritrace/batchledger/internal/retry"
)

// Ledger is the append-only custody store. Submit is the only write path,
// and all submissions from all callers serialize through a single commit
// writer goroutine.
type Ledger interface {
	Submit(ctx context.Context, mutation *Mutation) (*CommitReceipt, error)
	GetBatch(ctx context.Context, batchID uint64) (*Batch, error)
	// QueryEvents returns the events of one kind for one batch, ascending by
	// sequence, bounded to [fromSequence,toSequence] (toSequence < 0 means
	// unbounded)
	QueryEvents(ctx context.Context, kind EventKind, batchID uint64, fromSequence, toSequence int64) ([]*Event, error)
	Start() error
	Stop()
}

type Config struct {
	Writer WriterConfig        `yaml:"writer"`
	Retry  retry.ConfigWithMax `yaml:"retry"`
}

type WriterConfig struct {
	QueueLength *int `yaml:"queueLength"`
}

var WriterConfigDefaults = &WriterConfig{
	QueueLength: confutil.P(50),
}

type batchLedger struct {
	p         persistence.Persistence
	bgCtx     context.Context
	cancelCtx context.CancelFunc
	writer    *commitWriter
}

func NewLedger(bgCtx context.Context, conf *Config, p persistence.Persistence) Ledger {
	bl := &batchLedger{
		p: p,
	}
	bl.bgCtx, bl.cancelCtx = context.WithCancel(bgCtx)
	bl.writer = newCommitWriter(bl.bgCtx, bl, conf)
	return bl
}

func (bl *batchLedger) Start() error {
	return bl.writer.start()
}

func (bl *batchLedger) Stop() {
	bl.writer.stop()
	bl.cancelCtx()
}

func (bl *batchLedger) Submit(ctx context.Context, mutation *Mutation) (*CommitReceipt, error) {
	// Zero is a valid batch identifier - existence is decided by the presence
	// check inside the commit transaction, not by the id value
	if mutation == nil || mutation.Actor == "" {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidMutation)
	}
	if mutation.ID == uuid.Nil {
		mutation.ID = uuid.New()
	}
	op := bl.writer.newCommitOp(mutation)
	bl.writer.queue(ctx, op)
	if err := op.flush(ctx); err != nil {
		return nil, err
	}
	return op.receipt, nil
}

func (bl *batchLedger) GetBatch(ctx context.Context, batchID uint64) (*Batch, error) {
	var batches []*Batch
	err := bl.p.DB().
		WithContext(ctx).
		Table("batches").
		Where("batch_id = ?", batchID).
		Limit(1).
		Find(&batches).
		Error
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgBatchNotFound, batchID)
	}
	return batches[0], nil
}

func (bl *batchLedger) QueryEvents(ctx context.Context, kind EventKind, batchID uint64, fromSequence, toSequence int64) ([]*Event, error) {
	q := bl.p.DB().
		WithContext(ctx).
		Table("batch_events").
		Where("batch_id = ?", batchID).
		Where("kind = ?", kind).
		Where("sequence >= ?", fromSequence).
		Order("sequence ASC")
	if toSequence >= 0 {
		q = q.Where("sequence <= ?", toSequence)
	}
	var events []*Event
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
