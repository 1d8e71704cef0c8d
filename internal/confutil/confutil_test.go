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

package confutil

import (
	"context"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	assert.Equal(t, 10, Int(nil, 10))
	assert.Equal(t, 20, Int(P(20), 10))
	assert.Equal(t, 10, IntMin(nil, 1, 10))
	assert.Equal(t, 10, IntMin(P(0), 1, 10))
	assert.Equal(t, 20, IntMin(P(20), 1, 10))
}

func TestInt64(t *testing.T) {
	assert.Equal(t, int64(10), Int64(nil, 10))
	assert.Equal(t, int64(20), Int64(P(int64(20)), 10))
	assert.Equal(t, int64(10), Int64Min(nil, 1, 10))
	assert.Equal(t, int64(10), Int64Min(P(int64(0)), 1, 10))
	assert.Equal(t, int64(20), Int64Min(P(int64(20)), 1, 10))
}

func TestFloat64(t *testing.T) {
	assert.Equal(t, 2.0, Float64Min(nil, 1.0, 2.0))
	assert.Equal(t, 2.0, Float64Min(P(0.5), 1.0, 2.0))
	assert.Equal(t, 3.0, Float64Min(P(3.0), 1.0, 2.0))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool(P(false), true))
}

func TestStringNotEmpty(t *testing.T) {
	assert.Equal(t, "def", StringNotEmpty(nil, "def"))
	assert.Equal(t, "def", StringNotEmpty(P(""), "def"))
	assert.Equal(t, "set", StringNotEmpty(P("set"), "def"))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 10*time.Second, Duration(nil, 10*time.Second))
	assert.Equal(t, 10*time.Second, Duration(P("wrong"), 10*time.Second))
	assert.Equal(t, 500*time.Millisecond, Duration(P("500ms"), 10*time.Second))
	assert.Equal(t, 10*time.Second, DurationMin(P("5ms"), 1*time.Second, 10*time.Second))
	assert.Equal(t, 5*time.Second, DurationMin(P("5s"), 1*time.Second, 10*time.Second))
}

func TestByteSize(t *testing.T) {
	assert.Equal(t, int64(65536), ByteSize(nil, 0, "64KB"))
	assert.Equal(t, int64(65536), ByteSize(P("wrong"), 0, "64KB"))
	assert.Equal(t, int64(1048576), ByteSize(P("1MB"), 0, "64KB"))
	assert.Equal(t, int64(1024), ByteSize(P("10"), 1024, "64KB"))
}

func TestReadAndParseYAMLFile(t *testing.T) {
	ctx := context.Background()
	type conf struct {
		Name string `yaml:"name"`
	}

	var c conf
	err := ReadAndParseYAMLFile(ctx, path.Join(t.TempDir(), "nope.yaml"), &c)
	assert.Regexp(t, "BL011500", err)

	badFile := path.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badFile, []byte("{!!!! not yaml"), 0664))
	err = ReadAndParseYAMLFile(ctx, badFile, &c)
	assert.Regexp(t, "BL011502", err)

	goodFile := path.Join(t.TempDir(), "good.yaml")
	require.NoError(t, os.WriteFile(goodFile, []byte("name: cocoa"), 0664))
	require.NoError(t, ReadAndParseYAMLFile(ctx, goodFile, &c))
	assert.Equal(t, "cocoa", c.Name)
}
