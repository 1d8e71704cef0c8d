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

package mockpersistence

import (
	"database/sql/driver"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type SQLMockProvider struct {
	GormDB *gorm.DB
	Mock   sqlmock.Sqlmock
}

// NewSQLMockProvider provides a mock-database backed gorm DB for testing
// code paths that cannot be exercised against a real SQLite DB, such as
// forced commit failures.
func NewSQLMockProvider() (*SQLMockProvider, error) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(driver.DefaultParameterConverter))
	if err != nil {
		return nil, err
	}
	mock.ExpectQuery("SELECT VERSION()").WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("8.0.0"))
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &SQLMockProvider{
		GormDB: gdb,
		Mock:   mock,
	}, nil
}

func (p *SQLMockProvider) DB() *gorm.DB {
	return p.GormDB
}

func (p *SQLMockProvider) Close() {}
