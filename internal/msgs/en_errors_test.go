// Copyright © 2024 AgriTrace Contributors
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msgs

import (
	"context"
	"testing"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFormatting(t *testing.T) {
	ctx := context.Background()

	err := i18n.NewError(ctx, MsgBatchAlreadyExists, 101)
	assert.Regexp(t, "BL011200.*101", err)

	err = i18n.NewError(ctx, MsgNotCurrentOwner, "farmer2", 101)
	assert.Regexp(t, "BL011202.*farmer2.*101", err)
}

func TestStatusHints(t *testing.T) {
	code, ok := i18n.GetStatusHint(string(MsgBatchAlreadyExists))
	assert.True(t, ok)
	assert.Equal(t, 409, code)

	code, ok = i18n.GetStatusHint(string(MsgBatchNotFound))
	assert.True(t, ok)
	assert.Equal(t, 404, code)

	code, ok = i18n.GetStatusHint(string(MsgNotCurrentOwner))
	assert.True(t, ok)
	assert.Equal(t, 403, code)
}

func TestBadPrefixPanics(t *testing.T) {
	assert.Panics(t, func() {
		ffe("XX010000", "wrong prefix")
	})
}
