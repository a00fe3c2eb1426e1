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
	"database/sql"
	"fmt"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/internal/classifier"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/noctarius/catalog-reflector/internal/typemapper"
	"github.com/noctarius/catalog-reflector/spi/dictionary"
	"github.com/noctarius/catalog-reflector/spi/version"
	"github.com/samber/lo"
	"regexp"
	"strings"
	"time"
)

const DefaultFilterBatchSize = 500

// Query categories reported to the QueryObserver
const (
	CategoryObjects         = "objects"
	CategoryColumns         = "columns"
	CategoryConstraints     = "constraints"
	CategoryIndexes         = "indexes"
	CategoryTableComments   = "table_comments"
	CategoryMViewComments   = "mview_comments"
	CategoryTableOptions    = "table_options"
	CategoryViewDefinition  = "view_definition"
	CategoryMViewDefinition = "mview_definition"
	CategorySynonyms        = "synonyms"
	CategoryDatabaseLinks   = "db_links"
	CategorySchemaNames     = "schema_names"
	CategorySequenceNames   = "sequence_names"
)

var dbLinkRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_$#.@]*$`)

// Dictionary runs the catalog queries against a dictionary session
// and scans the results into raw row structs. It keeps no state
// between calls apart from its configuration.
type Dictionary struct {
	logger    *logging.Logger
	session   dictionary.Session
	observer  dictionary.QueryObserver
	batchSize int
}

func NewDictionary(
	session dictionary.Session, observer dictionary.QueryObserver, batchSize int,
) (*Dictionary, error) {

	logger, err := logging.NewLogger("Dictionary")
	if err != nil {
		return nil, err
	}

	if observer == nil {
		observer = dictionary.NoopObserver
	}
	if batchSize <= 0 {
		batchSize = DefaultFilterBatchSize
	}

	return &Dictionary{
		logger:    logger,
		session:   session,
		observer:  observer,
		batchSize: batchSize,
	}, nil
}

// DefaultSchema returns the schema of the underlying session
func (d *Dictionary) DefaultSchema(
	ctx context.Context,
) (string, error) {

	return d.session.DefaultSchema(ctx)
}

// ServerVersion returns the server version of the underlying session
func (d *Dictionary) ServerVersion(
	ctx context.Context,
) (version.OracleVersion, error) {

	return d.session.ServerVersion(ctx)
}

// ReadDatabaseLinkOwner returns the configured remote user of a
// database link, or nil if the link has no fixed user or is unknown
func (d *Dictionary) ReadDatabaseLinkOwner(
	ctx context.Context, dbLink string,
) (owner *string, err error) {

	err = d.queryFunc(ctx, CategoryDatabaseLinks, func(rows dictionary.Rows) error {
		var username *string
		if err := rows.Scan(&username); err != nil {
			return errors.Wrap(err, 0)
		}
		if owner == nil && username != nil {
			owner = username
		}
		return nil
	}, queryDatabaseLinkOwner, sql.Named("link", strings.ToUpper(dbLink)))
	return
}

func (d *Dictionary) ReadSchemaNames(
	ctx context.Context, dbLink string,
) ([]string, error) {

	query, err := d.template(queryTemplateSchemaNames, dbLink, "")
	if err != nil {
		return nil, err
	}
	return d.readNames(ctx, CategorySchemaNames, query)
}

func (d *Dictionary) ReadSequenceNames(
	ctx context.Context, owner, dbLink string,
) ([]string, error) {

	query, err := d.template(queryTemplateSequenceNames, dbLink, "")
	if err != nil {
		return nil, err
	}
	return d.readNames(ctx, CategorySequenceNames, query, sql.Named("owner", owner))
}

// ReadObjects lists tables, views and materialized views of the
// owner, restricted to names if not empty
func (d *Dictionary) ReadObjects(
	ctx context.Context, owner, dbLink string, names []string,
) ([]classifier.ObjectRow, error) {

	objects := make([]classifier.ObjectRow, 0)
	err := d.batchedQueryFunc(ctx, CategoryObjects, queryTemplateObjects, "o.object_name",
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row classifier.ObjectRow
			var temporary, isMView *string
			if err := rows.Scan(&row.Name, &row.ObjectType, &temporary,
				&row.IOTType, &isMView, &row.Tablespace); err != nil {

				return errors.Wrap(err, 0)
			}
			row.Temporary = flag(temporary)
			row.IsMView = flag(isMView)
			objects = append(objects, row)
			return nil
		},
	)
	return objects, err
}

// ColumnRow is one visible column of ALL_TAB_COLS
type ColumnRow struct {
	TableName       string
	ColumnName      string
	Type            typemapper.DictionaryType
	Nullable        bool
	DataDefault     *string
	Comment         *string
	Virtual         bool
	DefaultOnNull   bool
	IdentityOptions *string
}

// ReadColumns reads the visible columns of the owner's objects in
// table and column order. Identity information is only read from
// servers supporting identity columns.
func (d *Dictionary) ReadColumns(
	ctx context.Context, owner, dbLink string, names []string,
) ([]ColumnRow, error) {

	serverVersion, err := d.session.ServerVersion(ctx)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	template := queryTemplateColumnsLegacy
	if serverVersion.AtLeast(version.ORA_12_VERSION) {
		template = queryTemplateColumns
	}

	columns := make([]ColumnRow, 0)
	err = d.batchedQueryFunc(ctx, CategoryColumns, template, "col.table_name",
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row ColumnRow
			var charUsed, nullable, virtual, defaultOnNull *string
			if err := rows.Scan(&row.TableName, &row.ColumnName, &row.Type.DataType,
				&row.Type.DataPrecision, &row.Type.DataScale, &row.Type.DataLength,
				&row.Type.CharLength, &charUsed, &nullable, &row.DataDefault,
				&row.Comment, &virtual, &defaultOnNull, &row.IdentityOptions); err != nil {

				return errors.Wrap(err, 0)
			}
			row.Type.CharUsed = lo.FromPtr(charUsed)
			row.Nullable = flag(nullable)
			row.Virtual = flag(virtual)
			row.DefaultOnNull = flag(defaultOnNull)
			columns = append(columns, row)
			return nil
		},
	)
	return columns, err
}

// ConstraintRow is one column of a constraint, for foreign keys
// joined with the referred column at the same position
type ConstraintRow struct {
	TableName       string
	ConstraintName  string
	ConstraintType  string
	LocalColumn     *string
	RemoteOwner     *string
	RemoteTable     *string
	RemoteColumn    *string
	Position        *int
	SearchCondition *string
	DeleteRule      *string
	IndexName       *string
}

func (d *Dictionary) ReadConstraints(
	ctx context.Context, owner, dbLink string, names []string,
) ([]ConstraintRow, error) {

	constraints := make([]ConstraintRow, 0)
	err := d.batchedQueryFunc(ctx, CategoryConstraints, queryTemplateConstraints, "ac.table_name",
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row ConstraintRow
			if err := rows.Scan(&row.TableName, &row.ConstraintName, &row.ConstraintType,
				&row.LocalColumn, &row.RemoteOwner, &row.RemoteTable, &row.RemoteColumn,
				&row.Position, &row.SearchCondition, &row.DeleteRule, &row.IndexName); err != nil {

				return errors.Wrap(err, 0)
			}
			constraints = append(constraints, row)
			return nil
		},
	)
	return constraints, err
}

// IndexRow is one column of an index
type IndexRow struct {
	TableName       string
	IndexName       string
	IndexType       string
	Unique          bool
	Compressed      bool
	PrefixLength    *int
	ColumnName      *string
	ColumnPosition  int
	Expression      bool
	PrimaryKeyIndex bool
}

func (d *Dictionary) ReadIndexes(
	ctx context.Context, owner, dbLink string, names []string,
) ([]IndexRow, error) {

	indexes := make([]IndexRow, 0)
	err := d.batchedQueryFunc(ctx, CategoryIndexes, queryTemplateIndexes, "ai.table_name",
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row IndexRow
			var uniqueness, compression, expression, primaryKey *string
			if err := rows.Scan(&row.TableName, &row.IndexName, &row.IndexType, &uniqueness,
				&compression, &row.PrefixLength, &row.ColumnName, &row.ColumnPosition,
				&expression, &primaryKey); err != nil {

				return errors.Wrap(err, 0)
			}
			row.Unique = lo.FromPtr(uniqueness) == "UNIQUE"
			row.Compressed = lo.FromPtr(compression) == "ENABLED"
			row.Expression = flag(expression)
			row.PrimaryKeyIndex = flag(primaryKey)
			indexes = append(indexes, row)
			return nil
		},
	)
	return indexes, err
}

// CommentRow is the comment of a table, view or materialized view
type CommentRow struct {
	TableName string
	Comment   *string
}

func (d *Dictionary) ReadTableComments(
	ctx context.Context, owner, dbLink string, names []string,
) ([]CommentRow, error) {

	return d.readComments(ctx, CategoryTableComments, queryTemplateTableComments, "table_name",
		owner, dbLink, names)
}

func (d *Dictionary) ReadMViewComments(
	ctx context.Context, owner, dbLink string, names []string,
) ([]CommentRow, error) {

	return d.readComments(ctx, CategoryMViewComments, queryTemplateMViewComments, "mview_name",
		owner, dbLink, names)
}

// TableOptionsRow carries the storage options of a table
type TableOptionsRow struct {
	TableName   string
	Compression *string
	CompressFor *string
}

func (d *Dictionary) ReadTableOptions(
	ctx context.Context, owner, dbLink string, names []string,
) ([]TableOptionsRow, error) {

	serverVersion, err := d.session.ServerVersion(ctx)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	template := queryTemplateTableOptionsLegacy
	if serverVersion.AtLeast(version.ORA_11_VERSION) {
		template = queryTemplateTableOptions
	}

	options := make([]TableOptionsRow, 0)
	err = d.batchedQueryFunc(ctx, CategoryTableOptions, template, "table_name",
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row TableOptionsRow
			if err := rows.Scan(&row.TableName, &row.Compression, &row.CompressFor); err != nil {
				return errors.Wrap(err, 0)
			}
			options = append(options, row)
			return nil
		},
	)
	return options, err
}

// ReadViewDefinition returns the defining query of a view
func (d *Dictionary) ReadViewDefinition(
	ctx context.Context, owner, dbLink, name string,
) (*string, bool, error) {

	return d.readDefinition(ctx, CategoryViewDefinition, queryTemplateViewDefinition, owner, dbLink, name)
}

// ReadMViewDefinition returns the defining query of a materialized view
func (d *Dictionary) ReadMViewDefinition(
	ctx context.Context, owner, dbLink, name string,
) (*string, bool, error) {

	return d.readDefinition(ctx, CategoryMViewDefinition, queryTemplateMViewDefinition, owner, dbLink, name)
}

// SynonymRow is one synonym definition of ALL_SYNONYMS
type SynonymRow struct {
	SynonymName string
	TableOwner  string
	TableName   string
	DBLink      *string
}

// ReadSynonyms reads the synonyms of the owner, restricted to the
// given synonym names if not empty
func (d *Dictionary) ReadSynonyms(
	ctx context.Context, owner, dbLink string, names []string,
) ([]SynonymRow, error) {

	return d.readSynonyms(ctx, "synonym_name", owner, dbLink, names)
}

// ReadSynonymsReferring reads the synonyms of the owner pointing at
// one of the given target table names
func (d *Dictionary) ReadSynonymsReferring(
	ctx context.Context, owner, dbLink string, targetNames []string,
) ([]SynonymRow, error) {

	if len(targetNames) == 0 {
		return []SynonymRow{}, nil
	}
	return d.readSynonyms(ctx, "table_name", owner, dbLink, targetNames)
}

func (d *Dictionary) readSynonyms(
	ctx context.Context, filterColumn, owner, dbLink string, names []string,
) ([]SynonymRow, error) {

	synonyms := make([]SynonymRow, 0)
	err := d.batchedQueryFunc(ctx, CategorySynonyms, queryTemplateSynonyms, filterColumn,
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row SynonymRow
			var tableOwner *string
			if err := rows.Scan(&row.SynonymName, &tableOwner, &row.TableName, &row.DBLink); err != nil {
				return errors.Wrap(err, 0)
			}
			row.TableOwner = lo.FromPtr(tableOwner)
			synonyms = append(synonyms, row)
			return nil
		},
	)
	return synonyms, err
}

func (d *Dictionary) readComments(
	ctx context.Context, category, template, filterColumn, owner, dbLink string, names []string,
) ([]CommentRow, error) {

	comments := make([]CommentRow, 0)
	err := d.batchedQueryFunc(ctx, category, template, filterColumn,
		owner, dbLink, names, func(rows dictionary.Rows) error {
			var row CommentRow
			if err := rows.Scan(&row.TableName, &row.Comment); err != nil {
				return errors.Wrap(err, 0)
			}
			comments = append(comments, row)
			return nil
		},
	)
	return comments, err
}

func (d *Dictionary) readDefinition(
	ctx context.Context, category, template, owner, dbLink, name string,
) (definition *string, found bool, err error) {

	query, err := d.template(template, dbLink, "")
	if err != nil {
		return nil, false, err
	}

	err = d.queryFunc(ctx, category, func(rows dictionary.Rows) error {
		if err := rows.Scan(&definition); err != nil {
			return errors.Wrap(err, 0)
		}
		found = true
		return nil
	}, query, sql.Named("owner", owner), sql.Named("name", name))
	return
}

func (d *Dictionary) readNames(
	ctx context.Context, category, query string, args ...any,
) ([]string, error) {

	names := make([]string, 0)
	err := d.queryFunc(ctx, category, func(rows dictionary.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(err, 0)
		}
		names = append(names, name)
		return nil
	}, query, args...)
	return names, err
}

// batchedQueryFunc runs the template once for the whole owner if
// names is empty, otherwise once per batch of names with the names
// bound into an IN clause on filterColumn
func (d *Dictionary) batchedQueryFunc(
	ctx context.Context, category, template, filterColumn, owner, dbLink string,
	names []string, fn rowFunction,
) error {

	if len(names) == 0 {
		query, err := d.template(template, dbLink, "")
		if err != nil {
			return err
		}
		return d.queryFunc(ctx, category, fn, query, sql.Named("owner", owner))
	}

	for _, batch := range lo.Chunk(lo.Uniq(names), d.batchSize) {
		filter, args := inClause(filterColumn, batch)
		query, err := d.template(template, dbLink, filter)
		if err != nil {
			return err
		}
		args = append(args, sql.Named("owner", owner))
		if err := d.queryFunc(ctx, category, fn, query, args...); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) template(
	template, dbLink, filter string,
) (string, error) {

	suffix := ""
	if dbLink != "" {
		if !dbLinkRegex.MatchString(dbLink) {
			return "", errors.Errorf("illegal database link name '%s'", dbLink)
		}
		suffix = "@" + dbLink
	}
	return fmt.Sprintf(template, suffix, filter), nil
}

type rowFunction = func(
	rows dictionary.Rows,
) error

func (d *Dictionary) queryFunc(
	ctx context.Context, category string, fn rowFunction, query string, args ...any,
) (err error) {

	start := time.Now()
	defer func() {
		d.observer.ObserveQuery(category, time.Since(start), err)
	}()

	d.logger.Tracef("Running %s query: %s", category, query)

	rows, err := d.session.Query(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

func inClause(
	column string, names []string,
) (string, []any) {

	placeholders := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		bind := fmt.Sprintf("f%d", i)
		placeholders = append(placeholders, ":"+bind)
		args = append(args, sql.Named(bind, name))
	}
	return fmt.Sprintf("\n  AND %s IN (%s)", column, strings.Join(placeholders, ", ")), args
}

func flag(
	value *string,
) bool {

	if value == nil {
		return false
	}
	switch strings.ToUpper(*value) {
	case "Y", "YES":
		return true
	}
	return false
}
