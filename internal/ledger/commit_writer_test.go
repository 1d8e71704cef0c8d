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
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/batchledger/internal/confutil"
	"github.com/agritrace/batchledger/internal/persistence/mockpersistence"
	"github.com/agritrace/batchledger/internal/retry"
)

func newMockLedger(t *testing.T) (Ledger, sqlmock.Sqlmock) {
	mp, err := mockpersistence.NewSQLMockProvider()
	require.NoError(t, err)
	bl := NewLedger(context.Background(), &Config{
		Retry: retry.ConfigWithMax{
			Config: retry.Config{
				InitialDelay: confutil.P("1ms"),
				MaxDelay:     confutil.P("2ms"),
			},
			MaxAttempts: confutil.P(2),
		},
	}, mp)
	return bl, mp.Mock
}

func TestStartSequenceRestoreFail(t *testing.T) {
	bl, mdb := newMockLedger(t)
	mdb.ExpectQuery("SELECT.*batch_events").WillReturnError(fmt.Errorf("pop"))

	err := bl.Start()
	assert.Regexp(t, "BL011402.*pop", err)
	bl.Stop()
}

func TestSequenceRestoredFromCommittedState(t *testing.T) {
	bl, mdb := newMockLedger(t)
	mdb.ExpectQuery("SELECT.*batch_events").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(41)))
	require.NoError(t, bl.Start())
	defer bl.Stop()

	mdb.ExpectBegin()
	mdb.ExpectQuery("SELECT.*batches").
		WillReturnRows(sqlmock.NewRows([]string{"batch_id"}))
	mdb.ExpectExec("INSERT INTO .batches.").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mdb.ExpectExec("INSERT INTO .batch_events.").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mdb.ExpectCommit()

	receipt, err := bl.Submit(context.Background(), &Mutation{
		Kind:           MutationKindCreate,
		BatchID:        101,
		Actor:          "farmer1",
		OriginLocation: "Oyo State",
		QuantityKg:     250,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.Sequence)
	require.NoError(t, mdb.ExpectationsWereMet())
}

func TestCommitTransientFailureExhaustsRetries(t *testing.T) {
	bl, mdb := newMockLedger(t)
	mdb.ExpectQuery("SELECT.*batch_events").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(0)))
	require.NoError(t, bl.Start())
	defer bl.Stop()

	// both attempts fail before any validation outcome
	for i := 0; i < 2; i++ {
		mdb.ExpectBegin()
		mdb.ExpectQuery("SELECT.*batches").WillReturnError(fmt.Errorf("pop"))
		mdb.ExpectRollback()
	}

	_, err := bl.Submit(context.Background(), &Mutation{
		Kind:    MutationKindSetStatus,
		BatchID: 101,
		Actor:   "farmer1",
	})
	assert.Regexp(t, "BL011401.*pop", err)
	require.NoError(t, mdb.ExpectationsWereMet())
}

func TestValidationRejectionNeverRetries(t *testing.T) {
	bl, mdb := newMockLedger(t)
	mdb.ExpectQuery("SELECT.*batch_events").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(0)))
	require.NoError(t, bl.Start())
	defer bl.Stop()

	// a single transaction only - not found is deterministic
	mdb.ExpectBegin()
	mdb.ExpectQuery("SELECT.*batches").
		WillReturnRows(sqlmock.NewRows([]string{"batch_id"}))
	mdb.ExpectRollback()

	_, err := bl.Submit(context.Background(), &Mutation{
		Kind:     MutationKindTransfer,
		BatchID:  999,
		Actor:    "farmer1",
		NewOwner: "processor1",
	})
	assert.Regexp(t, "BL011201.*999", err)
	require.NoError(t, mdb.ExpectationsWereMet())
}
