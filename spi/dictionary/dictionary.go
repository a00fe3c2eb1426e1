/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements. See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dictionary

import (
	"context"
	"github.com/noctarius/catalog-reflector/spi/version"
	"time"
)

// Rows is the cursor over the result of a dictionary query.
// *sql.Rows satisfies the interface.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Session is the read-only access to the data dictionary of
// one database connection
type Session interface {
	// Query executes a read-only dictionary query with named
	// bind arguments
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	// DefaultSchema returns the schema unqualified names resolve
	// against
	DefaultSchema(ctx context.Context) (string, error)
	// ServerVersion returns the version of the database server
	ServerVersion(ctx context.Context) (version.OracleVersion, error)
}

// QueryObserver is notified about every executed dictionary query
type QueryObserver interface {
	ObserveQuery(category string, duration time.Duration, err error)
}

type QueryObserverFunc func(category string, duration time.Duration, err error)

func (f QueryObserverFunc) ObserveQuery(
	category string, duration time.Duration, err error,
) {

	f(category, duration, err)
}

var NoopObserver QueryObserver = QueryObserverFunc(func(_ string, _ time.Duration, _ error) {})
