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

package datatypes

// Category is the portable classification of a column type,
// independent of the native type it was reflected from
type Category string

const (
	UNKNOWN                Category = "UNKNOWN"
	INTEGER                Category = "INTEGER"
	NUMERIC                Category = "NUMERIC"
	FLOAT                  Category = "FLOAT"
	DOUBLE                 Category = "DOUBLE"
	REAL                   Category = "REAL"
	BINARY_FLOAT           Category = "BINARY_FLOAT"
	BINARY_DOUBLE          Category = "BINARY_DOUBLE"
	CHAR                   Category = "CHAR"
	VARCHAR                Category = "VARCHAR"
	NCHAR                  Category = "NCHAR"
	NVARCHAR               Category = "NVARCHAR"
	DATE                   Category = "DATE"
	TIMESTAMP              Category = "TIMESTAMP"
	INTERVAL_DAY_TO_SECOND Category = "INTERVAL_DAY_TO_SECOND"
	INTERVAL_YEAR_TO_MONTH Category = "INTERVAL_YEAR_TO_MONTH"
	RAW                    Category = "RAW"
	LONG_RAW               Category = "LONG_RAW"
	LONG                   Category = "LONG"
	BLOB                   Category = "BLOB"
	CLOB                   Category = "CLOB"
	NCLOB                  Category = "NCLOB"
	BFILE                  Category = "BFILE"
	ROWID                  Category = "ROWID"
	UROWID                 Category = "UROWID"
	BOOLEAN                Category = "BOOLEAN"
	JSON                   Category = "JSON"
)

// Family groups categories which may replace each other through
// an explicit native type hint
type Family string

const (
	UnknownFamily   Family = "unknown"
	NumericFamily   Family = "numeric"
	IEEEFamily      Family = "ieee-floating-point"
	CharacterFamily Family = "character"
	FixedFamily     Family = "fixed-character"
	TextFamily      Family = "text"
	BinaryFamily    Family = "binary"
	TemporalFamily  Family = "temporal"
	IntervalFamily  Family = "interval"
	RowIdFamily     Family = "rowid"
	BooleanFamily   Family = "boolean"
	DocumentFamily  Family = "document"
)

var categoryFamilies = map[Category]Family{
	INTEGER:                NumericFamily,
	NUMERIC:                NumericFamily,
	FLOAT:                  NumericFamily,
	DOUBLE:                 NumericFamily,
	REAL:                   NumericFamily,
	BINARY_FLOAT:           IEEEFamily,
	BINARY_DOUBLE:          IEEEFamily,
	VARCHAR:                CharacterFamily,
	NVARCHAR:               CharacterFamily,
	CHAR:                   FixedFamily,
	NCHAR:                  FixedFamily,
	LONG:                   TextFamily,
	CLOB:                   TextFamily,
	NCLOB:                  TextFamily,
	RAW:                    BinaryFamily,
	LONG_RAW:               BinaryFamily,
	BLOB:                   BinaryFamily,
	BFILE:                  BinaryFamily,
	DATE:                   TemporalFamily,
	TIMESTAMP:              TemporalFamily,
	INTERVAL_DAY_TO_SECOND: IntervalFamily,
	INTERVAL_YEAR_TO_MONTH: IntervalFamily,
	ROWID:                  RowIdFamily,
	UROWID:                 RowIdFamily,
	BOOLEAN:                BooleanFamily,
	JSON:                   DocumentFamily,
}

// Family returns the family the category belongs to
func (c Category) Family() Family {
	if family, ok := categoryFamilies[c]; ok {
		return family
	}
	return UnknownFamily
}

// Compatible returns true if both categories belong to the same
// known family
func (c Category) Compatible(
	other Category,
) bool {

	family := c.Family()
	return family != UnknownFamily && family == other.Family()
}
