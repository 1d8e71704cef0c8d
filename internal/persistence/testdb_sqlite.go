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

//go:build !testdbpostgres
// +build !testdbpostgres

package persistence

import (
	"context"

	"github.com/agritrace/batchledger/internal/confutil"
)

// Used by unit tests throughout the project that want a real DB.
// This version returns an in-memory SQLite DB.
func NewUnitTestPersistence(ctx context.Context, migrationsDir string) (Persistence, func(), error) {
	p, err := newSQLiteProvider(ctx, &Config{
		Type: TypeSQLite,
		SQLite: SQLiteConfig{
			SQLDBConfig: SQLDBConfig{
				URI:           ":memory:",
				AutoMigrate:   confutil.P(true),
				MigrationsDir: migrationsDir,
			},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return p, func() { p.Close() }, nil
}
