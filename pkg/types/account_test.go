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

package types

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountID(t *testing.T) {
	ctx := context.Background()

	a, err := ParseAccountID(ctx, "  farmer1  ")
	require.NoError(t, err)
	assert.Equal(t, "farmer1", a.String())

	_, err = ParseAccountID(ctx, "")
	assert.Regexp(t, "BL010003", err)

	_, err = ParseAccountID(ctx, "   ")
	assert.Regexp(t, "BL010003", err)
}

func TestAccountIDEquals(t *testing.T) {
	assert.True(t, AccountID("Farmer1").Equals("farmer1"))
	assert.False(t, AccountID("farmer1").Equals("farmer2"))
}

func TestShortID(t *testing.T) {
	id1 := ShortID()
	assert.Len(t, id1, 8)
	assert.NotEqual(t, id1, ShortID())
}
