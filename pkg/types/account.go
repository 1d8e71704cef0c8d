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
	"strings"

	"github.com/agritrace/batchledger/internal/msgs"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// AccountID is the identifier of an account that can own batches.
// Full checksum/format validation is delegated to the signing layer that
// authenticated the caller - here we only require a non-empty identifier,
// preserved as supplied (comparison is case insensitive).
type AccountID string

func ParseAccountID(ctx context.Context, s string) (AccountID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", i18n.NewError(ctx, msgs.MsgTypesAccountIDEmpty)
	}
	return AccountID(trimmed), nil
}

func (a AccountID) Equals(b AccountID) bool {
	return strings.EqualFold((string)(a), (string)(b))
}

func (a AccountID) String() string {
	return (string)(a)
}

// ShortID returns a random identifier for correlation in logs,
// with no uniqueness guarantee strong enough for persistence
func ShortID() string {
	return uuid.New().String()[0:8]
}
