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

	"github.com/agritrace/batchledger/internal/ledger"
	"github.com/agritrace/batchledger/internal/rpcserver"
)

// RPCModule exposes the custody operations over JSON/RPC. The actor is an
// explicit parameter on every mutating method - callers are trusted to
// assert identity, signature verification sits outside this service.
func RPCModule(cm Manager) *rpcserver.RPCModule {
	return rpcserver.NewRPCModule("batch").
		Add("batch_create", rpcserver.RPCMethod4(func(ctx context.Context, actor string, batchID uint64, originLocation string, quantityKg uint64) (*ledger.CommitReceipt, error) {
			return cm.CreateBatch(ctx, actor, batchID, originLocation, quantityKg)
		})).
		Add("batch_transferOwnership", rpcserver.RPCMethod3(func(ctx context.Context, actor string, batchID uint64, newOwner string) (*ledger.CommitReceipt, error) {
			return cm.TransferOwnership(ctx, actor, batchID, newOwner)
		})).
		Add("batch_updateStatus", rpcserver.RPCMethod3(func(ctx context.Context, actor string, batchID uint64, statusIndex int) (*ledger.CommitReceipt, error) {
			return cm.UpdateStatus(ctx, actor, batchID, statusIndex)
		})).
		Add("batch_lookup", rpcserver.RPCMethod1(func(ctx context.Context, batchID uint64) (*BatchView, error) {
			return cm.Lookup(ctx, batchID)
		})).
		Add("batch_status", rpcserver.RPCMethod0(func(ctx context.Context) ([]string, error) {
			return cm.StatusLabels(), nil
		}))
}
