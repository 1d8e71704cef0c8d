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
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"gorm.io/gorm"

	"github.com/agritrace/batchledger/internal/confutil"
	"github.com/agritrace/batchledger/internal/msgs"
	"github.com/agritrace/batchledger/internal/retry"
	"github.com/agritrace/batchledger/pkg/types"
)

type commitOperation struct {
	id         string
	mutation   *Mutation
	receipt    *CommitReceipt
	done       chan error
	isShutdown bool
}

// commitWriter is the serializing authority for the ledger. One goroutine
// owns the write path, validates each mutation against current state inside
// the commit transaction, and assigns the global sequence.
type commitWriter struct {
	bl           *batchLedger
	bgCtx        context.Context
	cancelCtx    context.CancelFunc
	retry        *retry.Retry
	workQueue    chan *commitOperation
	workerDone   chan struct{}
	started      bool
	nextSequence int64
}

func newCommitWriter(bgCtx context.Context, bl *batchLedger, conf *Config) *commitWriter {
	queueLength := confutil.IntMin(conf.Writer.QueueLength, 1, *WriterConfigDefaults.QueueLength)
	cw := &commitWriter{
		bl:         bl,
		retry:      retry.NewRetryLimited(&conf.Retry),
		workQueue:  make(chan *commitOperation, queueLength),
		workerDone: make(chan struct{}),
	}
	cw.bgCtx, cw.cancelCtx = context.WithCancel(bgCtx)
	return cw
}

// start restores the committed sequence position before accepting work, so
// sequence assignment continues monotonically across restarts
func (cw *commitWriter) start() error {
	ctx := log.WithLogField(cw.bgCtx, "job", "commit_writer")
	var maxSequences []int64
	err := cw.bl.p.DB().
		WithContext(ctx).
		Table("batch_events").
		Pluck("COALESCE(MAX(sequence), 0)", &maxSequences).
		Error
	if err != nil || len(maxSequences) != 1 {
		return i18n.WrapError(ctx, err, msgs.MsgSequenceRestoreFail)
	}
	cw.nextSequence = maxSequences[0] + 1
	log.L(ctx).Infof("Commit writer starting at sequence %d", cw.nextSequence)
	cw.started = true
	go cw.worker(ctx)
	return nil
}

func (cw *commitWriter) newCommitOp(mutation *Mutation) *commitOperation {
	return &commitOperation{
		id:       types.ShortID(),
		mutation: mutation,
		done:     make(chan error, 1), // 1 slot to ensure we don't block the writer
	}
}

func (cw *commitWriter) queue(ctx context.Context, op *commitOperation) {
	log.L(ctx).Debugf("Queuing commit operation %s (batch=%d,kind=%s)", op.id, op.mutation.BatchID, op.mutation.Kind)
	select {
	case <-cw.bgCtx.Done():
		// Once shutdown begins nothing new is accepted, even though the
		// queue channel might still have capacity
		op.done <- i18n.NewError(ctx, msgs.MsgLedgerQuiescing)
		return
	default:
	}
	select {
	case cw.workQueue <- op: // it's queued
	case <-ctx.Done(): // timeout of caller context
		// Just return, as they are giving up on the request so there's no need to queue it
		// If they flush they will get an error
	case <-cw.bgCtx.Done(): // shutdown
		op.done <- i18n.NewError(ctx, msgs.MsgLedgerQuiescing)
	}
}

func (op *commitOperation) flush(ctx context.Context) error {
	select {
	case err := <-op.done:
		log.L(ctx).Debugf("Flushed commit operation %s (err=%v)", op.id, err)
		return err
	case <-ctx.Done():
		return i18n.NewError(ctx, i18n.MsgContextCanceled)
	}
}

func (cw *commitWriter) worker(ctx context.Context) {
	defer close(cw.workerDone)
	l := log.L(ctx)
	for {
		select {
		case op := <-cw.workQueue:
			if op.isShutdown {
				l.Infof("Commit writer quiescing (queued=%d)", len(cw.workQueue))
				cw.drainQueue(ctx)
				close(op.done)
				return
			}
			cw.runOperation(ctx, op)
		case <-ctx.Done():
			l.Debugf("Commit writer ending")
			return
		}
	}
}

// drainQueue fails queued-but-uncommitted operations on shutdown, rather
// than leaving their submitters blocked in flush
func (cw *commitWriter) drainQueue(ctx context.Context) {
	for {
		select {
		case op := <-cw.workQueue:
			if !op.isShutdown {
				op.done <- i18n.NewError(ctx, msgs.MsgLedgerQuiescing)
			}
		default:
			return
		}
	}
}

func (cw *commitWriter) runOperation(ctx context.Context, op *commitOperation) {
	err := cw.retry.Do(ctx, func(attempt int) (retryable bool, err error) {
		err = cw.commit(ctx, op)
		// Validation outcomes are deterministic against committed state, so
		// they never retry. Anything else is assumed transient.
		return !isLedgerRejection(err), err
	})
	if err != nil {
		log.L(ctx).Errorf("Commit operation %s failed: %s", op.id, err)
		if !isLedgerRejection(err) {
			// transient failure that exhausted its retries
			err = i18n.WrapError(ctx, err, msgs.MsgMutationRejected, op.id)
		}
	}
	op.done <- err
}

func (cw *commitWriter) commit(ctx context.Context, op *commitOperation) error {
	m := op.mutation
	seq := cw.nextSequence
	now := types.TimestampNow()
	var committed *Batch
	err := cw.bl.p.DB().Transaction(func(tx *gorm.DB) error {
		var batches []*Batch
		err := tx.
			Table("batches").
			Where("batch_id = ?", m.BatchID).
			Limit(1).
			Find(&batches).
			Error
		if err != nil {
			return err
		}
		var current *Batch
		if len(batches) > 0 {
			current = batches[0]
		}

		event := &Event{
			Sequence:   seq,
			BatchID:    m.BatchID,
			Actor:      m.Actor,
			Submission: m.ID,
			Created:    now,
		}
		switch m.Kind {
		case MutationKindCreate:
			if current != nil {
				return i18n.NewError(ctx, msgs.MsgBatchAlreadyExists, m.BatchID)
			}
			committed = &Batch{
				BatchID:        m.BatchID,
				OriginLocation: m.OriginLocation,
				QuantityKg:     m.QuantityKg,
				Created:        now,
				CurrentOwner:   m.Actor,
				Status:         BatchStatusCreated.Enum(),
			}
			if err := tx.Table("batches").Create(committed).Error; err != nil {
				return err
			}
			owner := m.Actor
			event.Kind = EventKindBatchCreated.Enum()
			event.Owner = &owner
		case MutationKindTransfer:
			if current == nil {
				return i18n.NewError(ctx, msgs.MsgBatchNotFound, m.BatchID)
			}
			if !current.CurrentOwner.Equals(m.Actor) {
				return i18n.NewError(ctx, msgs.MsgNotCurrentOwner, m.Actor, m.BatchID)
			}
			if m.NewOwner == "" {
				return i18n.NewError(ctx, msgs.MsgInvalidNewOwner, m.BatchID, m.NewOwner)
			}
			if current.CurrentOwner.Equals(m.NewOwner) {
				return i18n.NewError(ctx, msgs.MsgOwnerUnchanged, m.NewOwner, m.BatchID)
			}
			if err := tx.
				Table("batches").
				Where("batch_id = ?", m.BatchID).
				Update("current_owner", m.NewOwner).
				Error; err != nil {
				return err
			}
			from := current.CurrentOwner
			to := m.NewOwner
			event.Kind = EventKindOwnershipTransferred.Enum()
			event.FromOwner = &from
			event.ToOwner = &to
			committed = current
			committed.CurrentOwner = m.NewOwner
		case MutationKindSetStatus:
			if current == nil {
				return i18n.NewError(ctx, msgs.MsgBatchNotFound, m.BatchID)
			}
			if !current.CurrentOwner.Equals(m.Actor) {
				return i18n.NewError(ctx, msgs.MsgNotCurrentOwner, m.Actor, m.BatchID)
			}
			if m.NewStatus.Index() < 0 {
				return i18n.NewError(ctx, msgs.MsgStatusEventMismatch, m.NewStatus, m.BatchID)
			}
			if err := tx.
				Table("batches").
				Where("batch_id = ?", m.BatchID).
				Update("status", m.NewStatus.Enum()).
				Error; err != nil {
				return err
			}
			newStatus := m.NewStatus.Enum()
			event.Kind = EventKindStatusUpdated.Enum()
			event.NewStatus = &newStatus
			committed = current
			committed.Status = newStatus
		default:
			return i18n.NewError(ctx, msgs.MsgInvalidMutation)
		}
		return tx.Table("batch_events").Create(event).Error
	})
	if err != nil {
		return err
	}
	cw.nextSequence++
	op.receipt = &CommitReceipt{
		Submission: m.ID,
		Sequence:   seq,
		Committed:  now,
		Batch:      committed,
	}
	log.L(ctx).Debugf("Committed %s for batch %d at sequence %d", m.Kind, m.BatchID, seq)
	return nil
}

// isLedgerRejection distinguishes deterministic validation failures from
// transient DB errors, by the code families reserved for validation
func isLedgerRejection(err error) bool {
	if err == nil {
		return false
	}
	code := err.Error()
	return strings.HasPrefix(code, "BL0111") || strings.HasPrefix(code, "BL0112")
}

func (cw *commitWriter) stop() {
	if !cw.started {
		cw.cancelCtx()
		return
	}
	select {
	case <-cw.workerDone:
	case <-cw.bgCtx.Done():
	default:
		// Quiesce the worker
		shutdownOp := &commitOperation{
			isShutdown: true,
			done:       make(chan error),
		}
		cw.workQueue <- shutdownOp
		<-shutdownOp.done
		<-cw.workerDone
	}
	cw.cancelCtx()
}
