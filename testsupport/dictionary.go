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

package testsupport

import (
	"context"
	"fmt"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/internal/snapshot"
	"github.com/noctarius/catalog-reflector/internal/sqlsession"
	"github.com/noctarius/catalog-reflector/spi/version"
	"github.com/samber/lo"
	"reflect"
	"sort"
	"strings"
)

const (
	DefaultSchema        = "SCOTT"
	DefaultTablespace    = "USERS"
	DefaultServerVersion = "19.3.0.0.0"
)

// DefaultIdentityOptions is the identity option string Oracle
// reports for GENERATED AS IDENTITY without further options
const DefaultIdentityOptions = "START WITH: 1, INCREMENT BY: 1, MAX_VALUE: 9999999999999999999999999999, " +
	"MIN_VALUE: 1, CYCLE_FLAG: N, CACHE_SIZE: 20, ORDER_FLAG: N, SCALE_FLAG: N, EXTEND_FLAG: N, " +
	"SESSION_FLAG: N, KEEP_VALUE: N"

// Dictionary is an in-memory SQLite data dictionary shaped like the
// Oracle ALL_* views. Objects created through a Remote dictionary
// end up in the views of that database link.
type Dictionary struct {
	session *sqlsession.Session
	dbLink  string
}

type Column struct {
	Name            string
	DataType        string
	Precision       *int
	Scale           *int
	Length          *int
	CharLength      *int
	CharUsed        string
	NotNull         bool
	Default         *string
	Comment         *string
	Hidden          bool
	Virtual         bool
	DefaultOnNull   bool
	Identity        string
	IdentityOptions string
}

type Table struct {
	Owner       string
	Name        string
	Temporary   bool
	Tablespace  string
	IOTType     string
	Compression string
	CompressFor string
	Dropped     bool
	Comment     *string
	Columns     []Column
}

type IndexColumn struct {
	Name       string
	Expression string
}

type Index struct {
	Owner        string
	Table        string
	Name         string
	Type         string
	Unique       bool
	PrefixLength *int
	Columns      []IndexColumn
}

type ForeignKey struct {
	Owner              string
	Table              string
	Name               string
	Columns            []string
	ReferredOwner      string
	ReferredConstraint string
	DeleteRule         string
}

func NewDictionary(
	defaultSchema string, serverVersion string,
) (*Dictionary, error) {

	oracleVersion, err := version.ParseOracleVersion(serverVersion)
	if err != nil {
		return nil, err
	}

	session, err := sqlsession.OpenSQLite(":memory:")
	if err != nil {
		return nil, err
	}

	if err := snapshot.Initialize(context.Background(), session.DB(), defaultSchema, oracleVersion); err != nil {
		_ = session.Close()
		return nil, err
	}

	return &Dictionary{
		session: session,
	}, nil
}

// NewDefaultDictionary creates a dictionary for the default schema
// of a 19c server
func NewDefaultDictionary() (*Dictionary, error) {
	return NewDictionary(DefaultSchema, DefaultServerVersion)
}

func (d *Dictionary) Session() *sqlsession.Session {
	return d.session
}

func (d *Dictionary) Close() error {
	return d.session.Close()
}

// AddDatabaseLink registers a database link with a fixed remote
// user and creates the remote dictionary views of the link
func (d *Dictionary) AddDatabaseLink(
	name, username string,
) error {

	for _, statement := range snapshot.Schema(name) {
		if _, err := d.session.DB().Exec(statement); err != nil {
			return errors.Wrap(err, 0)
		}
	}

	return d.Insert("all_db_links", map[string]any{
		"owner":    "PUBLIC",
		"db_link":  strings.ToUpper(name),
		"username": nullable(username),
		"host":     "remote",
	})
}

// Remote returns a dictionary writing into the views of a database
// link previously registered with AddDatabaseLink
func (d *Dictionary) Remote(
	dbLink string,
) *Dictionary {

	return &Dictionary{
		session: d.session,
		dbLink:  strings.ToUpper(dbLink),
	}
}

func (d *Dictionary) CreateUser(
	name string,
) error {

	return d.Insert("all_users", map[string]any{"username": name})
}

func (d *Dictionary) CreateTable(
	table Table,
) error {

	tablespace := lo.Ternary(table.Tablespace == "", DefaultTablespace, table.Tablespace)
	if table.Temporary {
		tablespace = ""
	}

	if err := d.Insert("all_objects", map[string]any{
		"owner":       table.Owner,
		"object_name": table.Name,
		"object_type": "TABLE",
		"temporary":   flag(table.Temporary, "Y", "N"),
	}); err != nil {
		return err
	}

	if err := d.Insert("all_tables", map[string]any{
		"owner":           table.Owner,
		"table_name":      table.Name,
		"tablespace_name": nullable(tablespace),
		"iot_type":        nullable(table.IOTType),
		"dropped":         flag(table.Dropped, "YES", "NO"),
		"compression":     lo.Ternary(table.Compression == "", "DISABLED", table.Compression),
		"compress_for":    nullable(table.CompressFor),
	}); err != nil {
		return err
	}

	if err := d.Insert("all_tab_comments", map[string]any{
		"owner":      table.Owner,
		"table_name": table.Name,
		"table_type": "TABLE",
		"comments":   table.Comment,
	}); err != nil {
		return err
	}

	return d.createColumns(table.Owner, table.Name, table.Columns)
}

func (d *Dictionary) CreateView(
	owner, name, text string, comment *string, columns ...Column,
) error {

	if err := d.Insert("all_objects", map[string]any{
		"owner":       owner,
		"object_name": name,
		"object_type": "VIEW",
		"temporary":   "N",
	}); err != nil {
		return err
	}

	if err := d.Insert("all_views", map[string]any{
		"owner":     owner,
		"view_name": name,
		"text":      text,
	}); err != nil {
		return err
	}

	if err := d.Insert("all_tab_comments", map[string]any{
		"owner":      owner,
		"table_name": name,
		"table_type": "VIEW",
		"comments":   comment,
	}); err != nil {
		return err
	}

	return d.createColumns(owner, name, columns)
}

// CreateMaterializedView creates a materialized view together with
// its container table, the way Oracle lists both in ALL_OBJECTS
func (d *Dictionary) CreateMaterializedView(
	owner, name, query string, comment *string, columns ...Column,
) error {

	if err := d.Insert("all_objects", map[string]any{
		"owner":       owner,
		"object_name": name,
		"object_type": "MATERIALIZED VIEW",
		"temporary":   "N",
	}); err != nil {
		return err
	}

	if err := d.CreateTable(Table{
		Owner:   owner,
		Name:    name,
		Comment: lo.ToPtr(fmt.Sprintf("snapshot table for snapshot %s.%s", owner, name)),
		Columns: columns,
	}); err != nil {
		return err
	}

	if err := d.Insert("all_mviews", map[string]any{
		"owner":      owner,
		"mview_name": name,
		"query":      query,
	}); err != nil {
		return err
	}

	return d.Insert("all_mview_comments", map[string]any{
		"owner":      owner,
		"mview_name": name,
		"comments":   comment,
	})
}

// AddPrimaryKey creates a primary key and its backing unique index
func (d *Dictionary) AddPrimaryKey(
	owner, table, name string, columns ...string,
) error {

	if err := d.addConstraint(owner, table, name, "P", map[string]any{"index_name": name}, columns); err != nil {
		return err
	}
	return d.AddIndex(Index{
		Owner:   owner,
		Table:   table,
		Name:    name,
		Unique:  true,
		Columns: lo.Map(columns, toIndexColumn),
	})
}

// AddUniqueConstraint creates a unique constraint and its backing
// unique index
func (d *Dictionary) AddUniqueConstraint(
	owner, table, name string, columns ...string,
) error {

	if err := d.addConstraint(owner, table, name, "U", map[string]any{"index_name": name}, columns); err != nil {
		return err
	}
	return d.AddIndex(Index{
		Owner:   owner,
		Table:   table,
		Name:    name,
		Unique:  true,
		Columns: lo.Map(columns, toIndexColumn),
	})
}

func (d *Dictionary) AddForeignKey(
	foreignKey ForeignKey,
) error {

	deleteRule := lo.Ternary(foreignKey.DeleteRule == "", "NO ACTION", foreignKey.DeleteRule)
	referredOwner := lo.Ternary(foreignKey.ReferredOwner == "", foreignKey.Owner, foreignKey.ReferredOwner)
	return d.addConstraint(foreignKey.Owner, foreignKey.Table, foreignKey.Name, "R", map[string]any{
		"r_owner":           referredOwner,
		"r_constraint_name": foreignKey.ReferredConstraint,
		"delete_rule":       deleteRule,
	}, foreignKey.Columns)
}

// AddCheckConstraint creates a check constraint, Oracle reports the
// referenced columns without a position
func (d *Dictionary) AddCheckConstraint(
	owner, table, name, condition string, columns ...string,
) error {

	if err := d.Insert("all_constraints", map[string]any{
		"owner":            owner,
		"constraint_name":  name,
		"constraint_type":  "C",
		"table_name":       table,
		"search_condition": condition,
	}); err != nil {
		return err
	}

	for _, column := range columns {
		if err := d.Insert("all_cons_columns", map[string]any{
			"owner":           owner,
			"constraint_name": name,
			"table_name":      table,
			"column_name":     column,
			"position":        nil,
		}); err != nil {
			return err
		}
	}
	return nil
}

// AddIndex creates an index, expression columns are reported with a
// system generated column name and an ALL_IND_EXPRESSIONS entry
func (d *Dictionary) AddIndex(
	index Index,
) error {

	indexType := lo.Ternary(index.Type == "", "NORMAL", index.Type)
	if lo.ContainsBy(index.Columns, func(column IndexColumn) bool {
		return column.Expression != ""
	}) && index.Type == "" {
		indexType = "FUNCTION-BASED NORMAL"
	}

	if err := d.Insert("all_indexes", map[string]any{
		"owner":         index.Owner,
		"index_name":    index.Name,
		"table_owner":   index.Owner,
		"table_name":    index.Table,
		"index_type":    indexType,
		"uniqueness":    lo.Ternary(index.Unique, "UNIQUE", "NONUNIQUE"),
		"compression":   lo.Ternary(index.PrefixLength != nil, "ENABLED", "DISABLED"),
		"prefix_length": index.PrefixLength,
	}); err != nil {
		return err
	}

	for i, column := range index.Columns {
		columnName := column.Name
		if column.Expression != "" {
			columnName = fmt.Sprintf("SYS_NC%05d$", i+1)
		}

		if err := d.Insert("all_ind_columns", map[string]any{
			"index_owner":     index.Owner,
			"index_name":      index.Name,
			"table_owner":     index.Owner,
			"table_name":      index.Table,
			"column_name":     columnName,
			"column_position": i + 1,
		}); err != nil {
			return err
		}

		if column.Expression != "" {
			if err := d.Insert("all_ind_expressions", map[string]any{
				"index_owner":       index.Owner,
				"index_name":        index.Name,
				"table_owner":       index.Owner,
				"table_name":        index.Table,
				"column_expression": column.Expression,
				"column_position":   i + 1,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dictionary) CreateSynonym(
	owner, name, tableOwner, tableName, dbLink string,
) error {

	return d.Insert("all_synonyms", map[string]any{
		"owner":        owner,
		"synonym_name": name,
		"table_owner":  nullable(tableOwner),
		"table_name":   tableName,
		"db_link":      nullable(dbLink),
	})
}

func (d *Dictionary) CreateSequence(
	owner, name string,
) error {

	return d.Insert("all_sequences", map[string]any{
		"sequence_owner": owner,
		"sequence_name":  name,
	})
}

// Insert adds a raw row to a dictionary view
func (d *Dictionary) Insert(
	view string, row map[string]any,
) error {

	columns := lo.Keys(row)
	sort.Strings(columns)

	values := lo.Map(columns, func(column string, _ int) any {
		return bindValue(row[column])
	})

	table := view
	if d.dbLink != "" {
		table = fmt.Sprintf("%s@%s", view, d.dbLink)
	}

	query := fmt.Sprintf("INSERT INTO \"%s\" (%s) VALUES (%s)", table, strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "))

	if _, err := d.session.DB().Exec(query, values...); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

func (d *Dictionary) createColumns(
	owner, table string, columns []Column,
) error {

	for i, column := range columns {
		charUsed := column.CharUsed
		if charUsed == "" && column.CharLength != nil {
			charUsed = "C"
		}

		if err := d.Insert("all_tab_cols", map[string]any{
			"owner":           owner,
			"table_name":      table,
			"column_name":     column.Name,
			"column_id":       i + 1,
			"data_type":       column.DataType,
			"data_precision":  column.Precision,
			"data_scale":      column.Scale,
			"data_length":     column.Length,
			"char_length":     column.CharLength,
			"char_used":       nullable(charUsed),
			"nullable":        flag(column.NotNull, "N", "Y"),
			"data_default":    column.Default,
			"hidden_column":   flag(column.Hidden, "YES", "NO"),
			"virtual_column":  flag(column.Virtual, "YES", "NO"),
			"default_on_null": flag(column.DefaultOnNull, "YES", "NO"),
		}); err != nil {
			return err
		}

		if err := d.Insert("all_col_comments", map[string]any{
			"owner":       owner,
			"table_name":  table,
			"column_name": column.Name,
			"comments":    column.Comment,
		}); err != nil {
			return err
		}

		if column.Identity != "" {
			options := lo.Ternary(column.IdentityOptions == "", DefaultIdentityOptions, column.IdentityOptions)
			if err := d.Insert("all_tab_identity_cols", map[string]any{
				"owner":            owner,
				"table_name":       table,
				"column_name":      column.Name,
				"generation_type":  column.Identity,
				"identity_options": options,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dictionary) addConstraint(
	owner, table, name, constraintType string, attributes map[string]any, columns []string,
) error {

	row := map[string]any{
		"owner":           owner,
		"constraint_name": name,
		"constraint_type": constraintType,
		"table_name":      table,
	}
	for key, value := range attributes {
		row[key] = value
	}
	if err := d.Insert("all_constraints", row); err != nil {
		return err
	}

	for i, column := range columns {
		if err := d.Insert("all_cons_columns", map[string]any{
			"owner":           owner,
			"constraint_name": name,
			"table_name":      table,
			"column_name":     column,
			"position":        i + 1,
		}); err != nil {
			return err
		}
	}
	return nil
}

// bindValue dereferences optional values, nil pointers bind as NULL
func bindValue(
	value any,
) any {

	if value == nil {
		return nil
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return value
}

func toIndexColumn(
	column string, _ int,
) IndexColumn {

	return IndexColumn{Name: column}
}

func nullable(
	value string,
) *string {

	if value == "" {
		return nil
	}
	return &value
}

func flag(
	value bool, yes, no string,
) string {

	return lo.Ternary(value, yes, no)
}
