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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchStatusIndexes(t *testing.T) {
	ctx := context.Background()

	for i, expected := range []BatchStatus{
		BatchStatusCreated,
		BatchStatusProcessed,
		BatchStatusInTransit,
		BatchStatusDelivered,
	} {
		s, err := BatchStatusFromIndex(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, expected, s)
		assert.Equal(t, i, s.Index())
	}

	_, err := BatchStatusFromIndex(ctx, -1)
	assert.Regexp(t, "BL011101", err)
	_, err = BatchStatusFromIndex(ctx, 4)
	assert.Regexp(t, "BL011101.*4", err)

	assert.Equal(t, -1, BatchStatus("wrong").Index())
	assert.Equal(t, string(BatchStatusCreated), BatchStatus("").Default())
}

func TestEnumValidation(t *testing.T) {
	v, err := BatchStatusInTransit.Enum().Validate()
	require.NoError(t, err)
	assert.Equal(t, BatchStatusInTransit, v)

	_, err = BatchStatus("wrong").Enum().Validate()
	assert.Regexp(t, "BL010002", err)

	k, err := EventKindStatusUpdated.Enum().Validate()
	require.NoError(t, err)
	assert.Equal(t, EventKindStatusUpdated, k)
}
