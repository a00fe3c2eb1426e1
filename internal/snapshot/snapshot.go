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

package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/go-errors/errors"
	"github.com/goccy/go-json"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/noctarius/catalog-reflector/internal/sqlsession"
	"github.com/noctarius/catalog-reflector/spi/dictionary"
	"github.com/noctarius/catalog-reflector/spi/version"
	"github.com/samber/lo"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Capture copies the dictionary rows of the given owners from a live
// session into a new SQLite dictionary file at path. Without owners
// the default schema of the session is captured.
func Capture(
	ctx context.Context, source dictionary.Session, owners []string, path string,
) error {

	logger, err := logging.NewLogger("Snapshot")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, 0)
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return errors.Wrap(err, 0)
		}
	}

	defaultSchema, err := source.DefaultSchema(ctx)
	if err != nil {
		return err
	}
	serverVersion, err := source.ServerVersion(ctx)
	if err != nil {
		return err
	}

	if len(owners) == 0 {
		owners = []string{defaultSchema}
	}
	owners = lo.Uniq(lo.Map(owners, func(owner string, _ int) string {
		return strings.ToUpper(owner)
	}))

	target, err := sqlsession.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer target.Close()

	if err := Initialize(ctx, target.DB(), defaultSchema, serverVersion); err != nil {
		return err
	}

	ownersJson, err := json.Marshal(owners)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	metadata := map[string]string{
		"created_at":     time.Now().Format(time.RFC3339),
		"server_version": serverVersion.String(),
		"owners":         string(ownersJson),
	}
	for key, value := range metadata {
		if _, err := target.DB().ExecContext(ctx,
			"INSERT INTO metadata (key, value) VALUES (?, ?)", key, value); err != nil {

			return errors.Wrap(err, 0)
		}
	}

	for _, view := range DictionaryViews {
		if view.MinVersion != 0 && !serverVersion.AtLeast(view.MinVersion) {
			logger.Verbosef("Skipping %s, not available on %s", view.Name, serverVersion)
			continue
		}

		count, err := captureView(ctx, source, target.DB(), view, serverVersion, owners)
		if err != nil {
			return errors.Errorf("failed to capture %s: %+v", view.Name, err)
		}
		logger.Debugf("Captured %d rows of %s", count, view.Name)
	}

	logger.Infof("Captured dictionary of %s into %s", strings.Join(owners, ", "), path)
	return nil
}

// Initialize creates the dictionary schema in an empty SQLite
// database and records the session information
func Initialize(
	ctx context.Context, db *sql.DB, defaultSchema string, serverVersion version.OracleVersion,
) error {

	for _, statement := range Schema("") {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return errors.Wrap(err, 0)
		}
	}

	if _, err := db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (default_schema, server_version) VALUES (?, ?)", sessionInfoTable),
		strings.ToUpper(defaultSchema), serverVersion.String(),
	); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

// Open opens a SQLite dictionary file as a dictionary session
func Open(
	path string,
) (*sqlsession.Session, error) {

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Errorf("snapshot file does not exist: %s", path)
	}
	return sqlsession.OpenSQLite(path)
}

func captureView(
	ctx context.Context, source dictionary.Session, target *sql.DB,
	view DictionaryView, serverVersion version.OracleVersion, owners []string,
) (int, error) {

	query := fmt.Sprintf("SELECT %s FROM %s", view.selectList(serverVersion), view.Name)
	args := make([]any, 0, len(owners))
	if view.OwnerColumn != "" {
		binds := make([]string, 0, len(owners))
		for i, owner := range owners {
			bind := fmt.Sprintf("o%d", i)
			binds = append(binds, ":"+bind)
			args = append(args, sql.Named(bind, owner))
		}
		query = fmt.Sprintf("%s WHERE %s IN (%s)", query, view.OwnerColumn, strings.Join(binds, ", "))
	}

	rows, err := source.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	tx, err := target.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, 0)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(view.Columns)), ", ")
	statement, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", view.Name, view.columnList(), placeholders),
	)
	if err != nil {
		return 0, errors.Wrap(err, 0)
	}
	defer statement.Close()

	count := 0
	values := make([]any, len(view.Columns))
	pointers := make([]any, len(view.Columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return 0, errors.Wrap(err, 0)
		}
		if _, err := statement.ExecContext(ctx, lo.Map(values, normalizeValue)...); err != nil {
			return 0, errors.Wrap(err, 0)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, errors.Wrap(err, 0)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, 0)
	}
	return count, nil
}

// normalizeValue converts driver specific values (such as numbers
// returned as decimal strings) into values SQLite can bind
func normalizeValue(
	value any, _ int,
) any {

	switch v := value.(type) {
	case nil, int64, float64, string, []byte, bool, time.Time:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
