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

package retry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/batchledger/internal/confutil"
)

func TestRetryEventuallyOK(t *testing.T) {
	r := NewRetryIndefinite(&Config{
		InitialDelay: confutil.P("1ms"),
		MaxDelay:     confutil.P("3ms"),
	})
	attempts := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		attempts++
		if attempts < 5 {
			return true, fmt.Errorf("pop")
		}
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, attempts)
}

func TestRetryLimitedExhausted(t *testing.T) {
	r := NewRetryLimited(&ConfigWithMax{
		Config: Config{
			InitialDelay: confutil.P("1ms"),
			MaxDelay:     confutil.P("3ms"),
		},
		MaxAttempts: confutil.P(3),
	})
	attempts := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		attempts++
		return true, fmt.Errorf("pop")
	})
	assert.Regexp(t, "pop", err)
	assert.Equal(t, 3, attempts)
}

func TestRetryNonRetryableError(t *testing.T) {
	r := NewRetryIndefinite(&Config{})
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		return false, fmt.Errorf("snap")
	})
	assert.Regexp(t, "snap", err)
}

func TestRetryCanceledContext(t *testing.T) {
	r := NewRetryIndefinite(&Config{
		InitialDelay: confutil.P("1h"),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Do(ctx, func(attempt int) (bool, error) {
		return true, fmt.Errorf("pop")
	})
	assert.Regexp(t, "FF00154", err)
}

func TestRetryDelayCapped(t *testing.T) {
	r := NewRetryIndefinite(&Config{
		InitialDelay: confutil.P("1ms"),
		MaxDelay:     confutil.P("2ms"),
		Factor:       confutil.P(10.0),
	})
	start := time.Now()
	require.NoError(t, r.WaitDelay(context.Background(), 10))
	assert.Less(t, time.Since(start), 1*time.Second)
}
