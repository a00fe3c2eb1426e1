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

// Query templates take the database link suffix (including the
// leading @, or empty) as first and an optional filter clause as
// second argument. All templates bind the owner as :owner.

// region Session Queries
const queryDatabaseLinkOwner = `
SELECT username
FROM all_db_links
WHERE db_link = :link OR db_link LIKE :link || '.%'`

const queryTemplateSchemaNames = `
SELECT username
FROM all_users%[1]s
ORDER BY username`

const queryTemplateSequenceNames = `
SELECT sequence_name
FROM all_sequences%[1]s
WHERE sequence_owner = :owner
ORDER BY sequence_name`
// endregion

// region Object Listing Queries
const queryTemplateObjects = `
SELECT o.object_name, o.object_type, o.temporary, t.iot_type,
       CASE WHEN mv.mview_name IS NULL THEN 'N' ELSE 'Y' END AS is_mview,
       t.tablespace_name
FROM all_objects%[1]s o
LEFT JOIN all_tables%[1]s t ON t.owner = o.owner AND t.table_name = o.object_name AND o.object_type = 'TABLE'
LEFT JOIN all_mviews%[1]s mv ON mv.owner = o.owner AND mv.mview_name = o.object_name AND o.object_type = 'TABLE'
WHERE o.owner = :owner
  AND o.object_type IN ('TABLE', 'VIEW', 'MATERIALIZED VIEW')
  AND (t.dropped IS NULL OR t.dropped = 'NO')%[2]s
ORDER BY o.object_name, o.object_type`
// endregion

// region Column Queries
const queryTemplateColumns = `
SELECT col.table_name, col.column_name, col.data_type, col.data_precision, col.data_scale,
       col.data_length, col.char_length, col.char_used, col.nullable, col.data_default,
       com.comments, col.virtual_column, col.default_on_null,
       CASE WHEN id.column_name IS NULL THEN NULL
            ELSE id.generation_type || ',' || id.identity_options END AS identity_options
FROM all_tab_cols%[1]s col
LEFT JOIN all_col_comments%[1]s com
       ON com.owner = col.owner AND com.table_name = col.table_name AND com.column_name = col.column_name
LEFT JOIN all_tab_identity_cols%[1]s id
       ON id.owner = col.owner AND id.table_name = col.table_name AND id.column_name = col.column_name
WHERE col.owner = :owner
  AND col.hidden_column = 'NO'%[2]s
ORDER BY col.table_name, col.column_id`

// queryTemplateColumnsLegacy is used on servers without identity columns
const queryTemplateColumnsLegacy = `
SELECT col.table_name, col.column_name, col.data_type, col.data_precision, col.data_scale,
       col.data_length, col.char_length, col.char_used, col.nullable, col.data_default,
       com.comments, col.virtual_column, 'NO' AS default_on_null,
       NULL AS identity_options
FROM all_tab_cols%[1]s col
LEFT JOIN all_col_comments%[1]s com
       ON com.owner = col.owner AND com.table_name = col.table_name AND com.column_name = col.column_name
WHERE col.owner = :owner
  AND col.hidden_column = 'NO'%[2]s
ORDER BY col.table_name, col.column_id`
// endregion

// region Constraint Queries
const queryTemplateConstraints = `
SELECT ac.table_name, ac.constraint_name, ac.constraint_type,
       loc.column_name AS local_column, rem.owner AS remote_owner,
       rem.table_name AS remote_table, rem.column_name AS remote_column,
       loc.position, ac.search_condition, ac.delete_rule, ac.index_name
FROM all_constraints%[1]s ac
LEFT JOIN all_cons_columns%[1]s loc
       ON loc.owner = ac.owner AND loc.constraint_name = ac.constraint_name AND loc.table_name = ac.table_name
LEFT JOIN all_cons_columns%[1]s rem
       ON rem.owner = ac.r_owner AND rem.constraint_name = ac.r_constraint_name AND rem.position = loc.position
WHERE ac.owner = :owner
  AND ac.constraint_type IN ('P', 'R', 'U', 'C')%[2]s
ORDER BY ac.table_name, ac.constraint_name, loc.position, loc.column_name`
// endregion

// region Index Queries
const queryTemplateIndexes = `
SELECT ai.table_name, ai.index_name, ai.index_type, ai.uniqueness, ai.compression,
       ai.prefix_length, aic.column_name, aic.column_position,
       CASE WHEN aie.index_name IS NULL THEN 'N' ELSE 'Y' END AS is_expression,
       CASE WHEN pk.constraint_name IS NULL THEN 'N' ELSE 'Y' END AS is_primary_key
FROM all_indexes%[1]s ai
JOIN all_ind_columns%[1]s aic
  ON aic.index_owner = ai.owner AND aic.index_name = ai.index_name
LEFT JOIN all_ind_expressions%[1]s aie
       ON aie.index_owner = aic.index_owner AND aie.index_name = aic.index_name
      AND aie.column_position = aic.column_position
LEFT JOIN all_constraints%[1]s pk
       ON pk.owner = ai.table_owner AND pk.table_name = ai.table_name
      AND pk.index_name = ai.index_name AND pk.constraint_type = 'P'
WHERE ai.table_owner = :owner
  AND ai.index_type != 'LOB'%[2]s
ORDER BY ai.table_name, ai.index_name, aic.column_position`
// endregion

// region Comment Queries
const queryTemplateTableComments = `
SELECT table_name, comments
FROM all_tab_comments%[1]s
WHERE owner = :owner
  AND table_name NOT LIKE 'BIN$%%'%[2]s`

const queryTemplateMViewComments = `
SELECT mview_name, comments
FROM all_mview_comments%[1]s
WHERE owner = :owner%[2]s`
// endregion

// region Table Option Queries
const queryTemplateTableOptions = `
SELECT table_name, compression, compress_for
FROM all_tables%[1]s
WHERE owner = :owner%[2]s`

// queryTemplateTableOptionsLegacy is used on servers without COMPRESS_FOR
const queryTemplateTableOptionsLegacy = `
SELECT table_name, compression, NULL AS compress_for
FROM all_tables%[1]s
WHERE owner = :owner%[2]s`
// endregion

// region View Definition Queries
const queryTemplateViewDefinition = `
SELECT text
FROM all_views%[1]s
WHERE owner = :owner AND view_name = :name`

const queryTemplateMViewDefinition = `
SELECT query
FROM all_mviews%[1]s
WHERE owner = :owner AND mview_name = :name`
// endregion

// region Synonym Queries
const queryTemplateSynonyms = `
SELECT synonym_name, table_owner, table_name, db_link
FROM all_synonyms%[1]s
WHERE owner = :owner%[2]s
ORDER BY synonym_name, table_owner, table_name`
// endregion
