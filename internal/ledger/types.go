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

	"github.com/agritrace/batchledger/internal/msgs"
	"github.com/agritrace/batchledger/pkg/types"
)

// BatchStatus is the bounded custody lifecycle of a batch. Any status may be
// written at any time by the current owner; the enumeration bounds the value
// set, not the ordering.
type BatchStatus string

const (
	BatchStatusCreated   BatchStatus = "created"
	BatchStatusProcessed BatchStatus = "processed"
	BatchStatusInTransit BatchStatus = "in_transit"
	BatchStatusDelivered BatchStatus = "delivered"
)

// batchStatusOrder fixes the external numeric indexes of the lifecycle
var batchStatusOrder = []BatchStatus{
	BatchStatusCreated,
	BatchStatusProcessed,
	BatchStatusInTransit,
	BatchStatusDelivered,
}

func (s BatchStatus) Options() []string {
	opts := make([]string, len(batchStatusOrder))
	for i, o := range batchStatusOrder {
		opts[i] = string(o)
	}
	return opts
}

func (s BatchStatus) Default() string {
	return string(BatchStatusCreated)
}

func (s BatchStatus) Enum() types.Enum[BatchStatus] {
	return types.Enum[BatchStatus](s)
}

// Index returns the external numeric position of the status, or -1 for a
// value outside the enumeration
func (s BatchStatus) Index() int {
	for i, o := range batchStatusOrder {
		if o == s {
			return i
		}
	}
	return -1
}

// BatchStatusFromIndex resolves an external numeric status index
func BatchStatusFromIndex(ctx context.Context, index int) (BatchStatus, error) {
	if index < 0 || index >= len(batchStatusOrder) {
		return "", i18n.NewError(ctx, msgs.MsgInvalidStatusIndex, index, len(batchStatusOrder)-1)
	}
	return batchStatusOrder[index], nil
}

// EventKind distinguishes the three append-only event streams of a batch
type EventKind string

const (
	EventKindBatchCreated         EventKind = "batch_created"
	EventKindStatusUpdated        EventKind = "status_updated"
	EventKindOwnershipTransferred EventKind = "ownership_transferred"
)

func (k EventKind) Options() []string {
	return []string{
		string(EventKindBatchCreated),
		string(EventKindStatusUpdated),
		string(EventKindOwnershipTransferred),
	}
}

func (k EventKind) Enum() types.Enum[EventKind] {
	return types.Enum[EventKind](k)
}

// Batch is the current custody record, updated in place by the commit writer
// in the same transaction as the event append
type Batch struct {
	BatchID        uint64                  `json:"batchId"        gorm:"column:batch_id;primaryKey"`
	OriginLocation string                  `json:"originLocation" gorm:"column:origin_location"`
	QuantityKg     uint64                  `json:"quantityKg"     gorm:"column:quantity_kg"`
	Created        types.Timestamp         `json:"created"        gorm:"column:created"`
	CurrentOwner   types.AccountID         `json:"currentOwner"   gorm:"column:current_owner"`
	Status         types.Enum[BatchStatus] `json:"status"         gorm:"column:status"`
}

func (Batch) TableName() string {
	return "batches"
}

// Event is one entry in the append-only log. The sequence is global across
// all batches and kinds, assigned by the commit writer.
type Event struct {
	Sequence   int64                    `json:"sequence"            gorm:"column:sequence;primaryKey"`
	BatchID    uint64                   `json:"batchId"             gorm:"column:batch_id"`
	Kind       types.Enum[EventKind]    `json:"kind"                gorm:"column:kind"`
	Actor      types.AccountID          `json:"actor"               gorm:"column:actor"`
	Owner      *types.AccountID         `json:"owner,omitempty"     gorm:"column:owner"`
	FromOwner  *types.AccountID         `json:"fromOwner,omitempty" gorm:"column:from_owner"`
	ToOwner    *types.AccountID         `json:"toOwner,omitempty"   gorm:"column:to_owner"`
	NewStatus  *types.Enum[BatchStatus] `json:"newStatus,omitempty" gorm:"column:new_status"`
	Submission uuid.UUID                `json:"submission"          gorm:"column:submission"`
	Created    types.Timestamp          `json:"created"             gorm:"column:created"`
}

func (Event) TableName() string {
	return "batch_events"
}

type MutationKind string

const (
	MutationKindCreate    MutationKind = "create"
	MutationKindTransfer  MutationKind = "transfer"
	MutationKindSetStatus MutationKind = "set_status"
)

// Mutation is a validated-at-commit write request. Fields beyond Kind,
// BatchID and Actor are interpreted per kind.
type Mutation struct {
	ID             uuid.UUID
	Kind           MutationKind
	BatchID        uint64
	Actor          types.AccountID
	OriginLocation string          // create
	QuantityKg     uint64          // create
	NewOwner       types.AccountID // transfer
	NewStatus      BatchStatus     // setStatus
}

// CommitReceipt is returned once the mutation is durably committed, carrying
// the record as it stood immediately after the commit
type CommitReceipt struct {
	Submission uuid.UUID       `json:"submission"`
	Sequence   int64           `json:"sequence"`
	Committed  types.Timestamp `json:"committed"`
	Batch      *Batch          `json:"batch"`
}
