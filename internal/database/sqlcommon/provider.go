// Copyright © 2021 Kaleido, Inc.
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

package sqlcommon

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	migratedb "github.com/golang-migrate/migrate/v4/database"
)

const (
	// sequenceColumn is the local insertion order of the transfer journal
	sequenceColumn = "seq"
)

// SQLFeatures are the per-database switches for the transfer journal
type SQLFeatures struct {
	PlaceholderFormat     sq.PlaceholderFormat
	DefaultMaxConnections int
	// DefaultConnIdleTime of "0" never closes an idle connection
	DefaultConnIdleTime string
}

func DefaultSQLProviderFeatures() SQLFeatures {
	return SQLFeatures{
		PlaceholderFormat:     sq.Dollar,
		DefaultMaxConnections: 0,
		DefaultConnIdleTime:   "1m",
	}
}

// Provider is a database the transfer journal can be stored in
type Provider interface {
	Name() string

	// MigrationsDir is the subdirectory of db/migrations holding this database's DDL
	MigrationsDir() string

	Open(url string) (*sql.DB, error)

	GetMigrationDriver(*sql.DB) (migratedb.Driver, error)

	Features() SQLFeatures

	// UpdateInsertForSequenceReturn adapts a journal INSERT so the new row's sequence column comes back, and reports whether it must be run as a query to read it
	UpdateInsertForSequenceReturn(insert sq.InsertBuilder, column string) (updatedInsert sq.InsertBuilder, runAsQuery bool)
}
