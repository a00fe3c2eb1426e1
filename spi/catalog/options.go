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

package catalog

// NoSchema is the schema translate map key applied to
// requests which do not name a schema
const NoSchema = ""

// SchemaTranslateMap maps requested schema names to the
// physical schema the catalog queries run against
type SchemaTranslateMap map[string]string

// Options configure a single reflection request. The zero value
// reflects base tables of the connection's default schema on the
// local database without following synonyms.
type Options struct {
	// Schema is the requested schema, empty for the default schema
	Schema string
	// DBLink qualifies every catalog query with a database link
	DBLink string
	// ResolveSynonyms follows synonyms to their target objects
	ResolveSynonyms bool
	// IncludeAll surfaces system generated NOT NULL checks
	IncludeAll bool
	// Kind restricts bulk requests, zero means Table
	Kind ObjectKind
	// FilterNames restricts bulk requests to the named objects
	FilterNames []string
	// SchemaTranslateMap substitutes the physical schema to query
	SchemaTranslateMap SchemaTranslateMap
}

// KindOrDefault returns the requested kind or defaultKind if
// no kind was requested
func (o Options) KindOrDefault(
	defaultKind ObjectKind,
) ObjectKind {

	if o.Kind == 0 {
		return defaultKind
	}
	return o.Kind
}

// WithFilter returns a copy of the options restricted to the
// given names
func (o Options) WithFilter(
	names ...string,
) Options {

	o.FilterNames = names
	return o
}
