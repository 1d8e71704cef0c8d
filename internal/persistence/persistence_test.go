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

package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateUp(t *testing.T) {

	ctx := context.Background()

	// Up runs as part of the init
	p, done, err := NewUnitTestPersistence(ctx, "../../db/migrations/sqlite")
	assert.NoError(t, err)
	assert.NotNil(t, p.DB())
	defer done()

}

func TestPersistenceTypes(t *testing.T) {
	ctx := context.Background()

	_, err := NewPersistence(ctx, &Config{})
	assert.Regexp(t, "BL010101", err)

	_, err = NewPersistence(ctx, &Config{Type: "sqlite"})
	assert.Regexp(t, "BL010101", err)

	_, err = NewPersistence(ctx, &Config{Type: "postgres"})
	assert.Regexp(t, "BL010101", err)

	// Different error for an unknown type
	_, err = NewPersistence(ctx, &Config{Type: "wrong"})
	assert.Regexp(t, "BL010100.*wrong", err)

}

func TestMissingMigrationsDir(t *testing.T) {
	ctx := context.Background()

	_, err := newSQLiteProvider(ctx, &Config{
		Type: TypeSQLite,
		SQLite: SQLiteConfig{
			SQLDBConfig: SQLDBConfig{
				URI:         ":memory:",
				AutoMigrate: func() *bool { b := true; return &b }(),
			},
		},
	})
	assert.Regexp(t, "BL010104", err)
}
