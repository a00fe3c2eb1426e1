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
	"fmt"
	"github.com/noctarius/catalog-reflector/spi/version"
	"strings"
)

// DictionaryView describes one dictionary view mirrored into a
// SQLite dictionary. Columns only available from MinVersion on
// are captured as NULL on older servers.
type DictionaryView struct {
	Name        string
	OwnerColumn string
	Columns     []ViewColumn
	MinVersion  version.OracleVersion
}

type ViewColumn struct {
	Name       string
	Type       string
	MinVersion version.OracleVersion
}

func text(
	name string,
) ViewColumn {

	return ViewColumn{Name: name, Type: "TEXT"}
}

func integer(
	name string,
) ViewColumn {

	return ViewColumn{Name: name, Type: "INTEGER"}
}

func since(
	column ViewColumn, minVersion version.OracleVersion,
) ViewColumn {

	column.MinVersion = minVersion
	return column
}

// DictionaryViews are the dictionary views and columns read by the
// catalog queries
var DictionaryViews = []DictionaryView{
	{
		Name:        "all_objects",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("object_name"), text("object_type"), text("temporary"),
		},
	},
	{
		Name:        "all_tables",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("table_name"), text("tablespace_name"), text("iot_type"),
			text("dropped"), text("compression"), since(text("compress_for"), version.ORA_11_VERSION),
		},
	},
	{
		Name:        "all_mviews",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("mview_name"), text("query"),
		},
	},
	{
		Name:        "all_tab_cols",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("table_name"), text("column_name"), integer("column_id"),
			text("data_type"), integer("data_precision"), integer("data_scale"),
			integer("data_length"), integer("char_length"), text("char_used"),
			text("nullable"), text("data_default"), text("hidden_column"),
			text("virtual_column"), since(text("default_on_null"), version.ORA_12_VERSION),
		},
	},
	{
		Name:        "all_col_comments",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("table_name"), text("column_name"), text("comments"),
		},
	},
	{
		Name:        "all_tab_identity_cols",
		OwnerColumn: "owner",
		MinVersion:  version.ORA_12_VERSION,
		Columns: []ViewColumn{
			text("owner"), text("table_name"), text("column_name"),
			text("generation_type"), text("identity_options"),
		},
	},
	{
		Name:        "all_constraints",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("constraint_name"), text("constraint_type"), text("table_name"),
			text("r_owner"), text("r_constraint_name"), text("search_condition"),
			text("delete_rule"), text("index_name"),
		},
	},
	{
		Name:        "all_cons_columns",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("constraint_name"), text("table_name"),
			text("column_name"), integer("position"),
		},
	},
	{
		Name:        "all_indexes",
		OwnerColumn: "table_owner",
		Columns: []ViewColumn{
			text("owner"), text("index_name"), text("table_owner"), text("table_name"),
			text("index_type"), text("uniqueness"), text("compression"), integer("prefix_length"),
		},
	},
	{
		Name:        "all_ind_columns",
		OwnerColumn: "table_owner",
		Columns: []ViewColumn{
			text("index_owner"), text("index_name"), text("table_owner"), text("table_name"),
			text("column_name"), integer("column_position"),
		},
	},
	{
		Name:        "all_ind_expressions",
		OwnerColumn: "table_owner",
		Columns: []ViewColumn{
			text("index_owner"), text("index_name"), text("table_owner"), text("table_name"),
			text("column_expression"), integer("column_position"),
		},
	},
	{
		Name:        "all_tab_comments",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("table_name"), text("table_type"), text("comments"),
		},
	},
	{
		Name:        "all_mview_comments",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("mview_name"), text("comments"),
		},
	},
	{
		Name:        "all_views",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("view_name"), text("text"),
		},
	},
	{
		Name:        "all_synonyms",
		OwnerColumn: "owner",
		Columns: []ViewColumn{
			text("owner"), text("synonym_name"), text("table_owner"), text("table_name"), text("db_link"),
		},
	},
	{
		Name:        "all_sequences",
		OwnerColumn: "sequence_owner",
		Columns: []ViewColumn{
			text("sequence_owner"), text("sequence_name"),
		},
	},
	{
		Name: "all_db_links",
		Columns: []ViewColumn{
			text("owner"), text("db_link"), text("username"), text("host"),
		},
	},
	{
		Name: "all_users",
		Columns: []ViewColumn{
			text("username"),
		},
	},
}

const sessionInfoTable = "session_info"

const createSessionInfoTable = `
CREATE TABLE IF NOT EXISTS session_info (
    default_schema TEXT NOT NULL,
    server_version TEXT NOT NULL
)`

const createMetadataTable = `
CREATE TABLE IF NOT EXISTS metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// Schema returns the DDL statements creating an empty SQLite
// dictionary. With a database link the dictionary views are
// created as the remote views of that link (all_objects@LINK).
func Schema(
	dbLink string,
) []string {

	suffix := ""
	if dbLink != "" {
		suffix = "@" + strings.ToUpper(dbLink)
	}

	statements := make([]string, 0, len(DictionaryViews)+2)
	if dbLink == "" {
		statements = append(statements, createSessionInfoTable, createMetadataTable)
	}

	for _, view := range DictionaryViews {
		columns := make([]string, 0, len(view.Columns))
		for _, column := range view.Columns {
			columns = append(columns, fmt.Sprintf("%s %s", column.Name, column.Type))
		}
		statements = append(statements, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS \"%s%s\" (%s)", view.Name, suffix, strings.Join(columns, ", "),
		))
	}
	return statements
}

// selectList returns the column list of a view as readable from
// a server of the given version
func (v DictionaryView) selectList(
	serverVersion version.OracleVersion,
) string {

	columns := make([]string, 0, len(v.Columns))
	for _, column := range v.Columns {
		if column.MinVersion != 0 && !serverVersion.AtLeast(column.MinVersion) {
			columns = append(columns, fmt.Sprintf("NULL AS %s", column.Name))
			continue
		}
		columns = append(columns, column.Name)
	}
	return strings.Join(columns, ", ")
}

func (v DictionaryView) columnList() string {
	columns := make([]string, 0, len(v.Columns))
	for _, column := range v.Columns {
		columns = append(columns, column.Name)
	}
	return strings.Join(columns, ", ")
}
