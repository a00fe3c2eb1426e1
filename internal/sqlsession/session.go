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

package sqlsession

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-errors/errors"
	_ "github.com/godror/godror"
	"github.com/noctarius/catalog-reflector/internal/logging"
	spiconfig "github.com/noctarius/catalog-reflector/spi/config"
	"github.com/noctarius/catalog-reflector/spi/dictionary"
	"github.com/noctarius/catalog-reflector/spi/version"
	_ "modernc.org/sqlite"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	DriverOracle = "godror"
	DriverSQLite = "sqlite"
)

const queryOracleDefaultSchema = `SELECT SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA') FROM DUAL`

const queryOracleServerVersion = `
SELECT version
FROM product_component_version
WHERE product LIKE 'Oracle%'`

const querySQLiteDefaultSchema = `SELECT default_schema FROM session_info`

const querySQLiteServerVersion = `SELECT server_version FROM session_info`

// remote dictionary views of a SQLite dictionary are stored as
// quoted tables named like all_objects@LINK
var sqliteDatabaseLinkRegex = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)(@[A-Za-z][A-Za-z0-9_$#.@]*)`)

type dialect struct {
	defaultSchemaQuery string
	serverVersionQuery string
	rewrite            func(query string) string
}

var dialects = map[string]dialect{
	DriverOracle: {
		defaultSchemaQuery: queryOracleDefaultSchema,
		serverVersionQuery: queryOracleServerVersion,
	},
	DriverSQLite: {
		defaultSchemaQuery: querySQLiteDefaultSchema,
		serverVersionQuery: querySQLiteServerVersion,
		rewrite: func(query string) string {
			return sqliteDatabaseLinkRegex.ReplaceAllString(query, `"$1$2"`)
		},
	},
}

// Session is a dictionary.Session on top of a database/sql
// connection pool, either a live Oracle database (godror) or
// a SQLite dictionary file
type Session struct {
	logger        *logging.Logger
	db            *sql.DB
	driverName    string
	dialect       dialect
	mutex         sync.Mutex
	serverVersion *version.OracleVersion
}

// Connect opens a session against the Oracle database configured
// in the oracle section of the configuration. The connection is
// verified with a ping, retried with exponential backoff.
func Connect(
	ctx context.Context, config *spiconfig.Config,
) (*Session, error) {

	connection := spiconfig.GetOrDefault(config, spiconfig.PropertyOracleConnection, "")
	if connection == "" {
		return nil, errors.Errorf("no Oracle connection configured (%s)", spiconfig.PropertyOracleConnection)
	}

	user := spiconfig.GetOrDefault(config, spiconfig.PropertyOracleUser, "")
	password := spiconfig.GetOrDefault(config, spiconfig.PropertyOraclePassword, "")
	timeout := spiconfig.GetOrDefault(config, spiconfig.PropertyOracleTimeout, time.Second*30)
	retries := spiconfig.GetOrDefault(config, spiconfig.PropertyOracleConnectRetries, 5)

	db, err := sql.Open(DriverOracle, ConnectString(connection, user, password))
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	session, err := NewSession(db, DriverOracle)
	if err != nil {
		return nil, err
	}

	operation := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			session.logger.Warnf("Connecting to %s failed: %+v", connection, err)
			return err
		}
		return nil
	}

	backOff := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(max(retries, 0))), ctx,
	)
	if err := backoff.Retry(operation, backOff); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, 0)
	}

	session.logger.Infof("Connected to %s", connection)
	return session, nil
}

// ConnectString builds the godror connection string. Without a user
// the connection is expected to be a complete connection string.
func ConnectString(
	connection, user, password string,
) string {

	if user == "" {
		return connection
	}
	return fmt.Sprintf("user=%q password=%q connectString=%q", user, password, connection)
}

// OpenSQLite opens a session on a SQLite dictionary file
func OpenSQLite(
	path string,
) (*Session, error) {

	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	// in-memory databases exist per connection
	db.SetMaxOpenConns(1)
	return NewSession(db, DriverSQLite)
}

func NewSession(
	db *sql.DB, driverName string,
) (*Session, error) {

	d, present := dialects[driverName]
	if !present {
		return nil, errors.Errorf("unsupported dictionary driver '%s'", driverName)
	}

	logger, err := logging.NewLogger("Session")
	if err != nil {
		return nil, err
	}

	return &Session{
		logger:     logger,
		db:         db,
		driverName: driverName,
		dialect:    d,
	}, nil
}

func (s *Session) Query(
	ctx context.Context, query string, args ...any,
) (dictionary.Rows, error) {

	if s.dialect.rewrite != nil {
		query = s.dialect.rewrite(query)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return rows, nil
}

func (s *Session) DefaultSchema(
	ctx context.Context,
) (string, error) {

	var schema string
	if err := s.db.QueryRowContext(ctx, s.dialect.defaultSchemaQuery).Scan(&schema); err != nil {
		return "", errors.Wrap(err, 0)
	}
	return strings.ToUpper(schema), nil
}

// ServerVersion reads the server version once per session
func (s *Session) ServerVersion(
	ctx context.Context,
) (version.OracleVersion, error) {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.serverVersion != nil {
		return *s.serverVersion, nil
	}

	var banner string
	if err := s.db.QueryRowContext(ctx, s.dialect.serverVersionQuery).Scan(&banner); err != nil {
		return 0, errors.Wrap(err, 0)
	}

	serverVersion, err := version.ParseOracleVersion(banner)
	if err != nil {
		return 0, err
	}
	s.serverVersion = &serverVersion
	return serverVersion, nil
}

// DriverName returns the database/sql driver of the session
func (s *Session) DriverName() string {
	return s.driverName
}

// DB returns the underlying connection pool
func (s *Session) DB() *sql.DB {
	return s.db
}

func (s *Session) Close() error {
	return s.db.Close()
}
