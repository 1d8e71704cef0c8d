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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGrade string

const (
	TestGradeStandard testGrade = "standard"
	TestGradePremium  testGrade = "premium"
)

func (tg testGrade) Options() []string {
	return []string{
		string(TestGradeStandard),
		string(TestGradePremium),
	}
}

func (tg testGrade) Default() string {
	return string(TestGradeStandard)
}

func TestEnumValidateWithDefault(t *testing.T) {
	v, err := Enum[testGrade]("").Validate()
	require.NoError(t, err)
	assert.Equal(t, TestGradeStandard, v)

	// case insensitive, normalized to the declared option
	v, err = Enum[testGrade]("PREMIUM").Validate()
	require.NoError(t, err)
	assert.Equal(t, TestGradePremium, v)

	_, err = Enum[testGrade]("deluxe").Validate()
	assert.Regexp(t, "BL010002.*standard,premium", err)

	assert.Equal(t, TestGradePremium, Enum[testGrade]("premium").V())
}

func TestEnumDatabaseSerialization(t *testing.T) {
	v, err := Enum[testGrade]("premium").Value()
	require.NoError(t, err)
	assert.Equal(t, "premium", v)

	_, err = Enum[testGrade]("deluxe").Value()
	assert.Regexp(t, "BL010002", err)

	var e Enum[testGrade]
	require.NoError(t, e.Scan("premium"))
	assert.Equal(t, TestGradePremium, e.V())

	require.NoError(t, e.Scan([]byte("standard")))
	assert.Equal(t, TestGradeStandard, e.V())

	require.NoError(t, e.Scan(nil))
	assert.Equal(t, TestGradeStandard, e.V())

	assert.Regexp(t, "BL010002", e.Scan("deluxe"))
	assert.Regexp(t, "BL010001", e.Scan(42))
}
