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

package typemapper

import (
	"github.com/noctarius/catalog-reflector/spi/datatypes"
)

type portableConverter func(native datatypes.NativeType) datatypes.PortableType

type nativeConverter func(portable datatypes.PortableType) datatypes.NativeType

type nativeRegistration struct {
	category  datatypes.Category
	converter portableConverter
}

type portableRegistration struct {
	nativeName string
	converter  nativeConverter
}

// nativeTypes maps the base names of ALL_TAB_COLS.DATA_TYPE
// to their portable category
var nativeTypes = map[string]nativeRegistration{
	datatypes.NativeNumber: {
		converter: number2portable,
	},
	datatypes.NativeFloat: {
		converter: float2portable,
	},
	datatypes.NativeBinaryFloat: {
		category: datatypes.BINARY_FLOAT,
	},
	datatypes.NativeBinaryDouble: {
		category: datatypes.BINARY_DOUBLE,
	},
	datatypes.NativeVarchar2: {
		category:  datatypes.VARCHAR,
		converter: lengthOf(datatypes.VARCHAR),
	},
	datatypes.NativeNVarchar2: {
		category:  datatypes.NVARCHAR,
		converter: lengthOf(datatypes.NVARCHAR),
	},
	datatypes.NativeChar: {
		category:  datatypes.CHAR,
		converter: lengthOf(datatypes.CHAR),
	},
	datatypes.NativeNChar: {
		category:  datatypes.NCHAR,
		converter: lengthOf(datatypes.NCHAR),
	},
	datatypes.NativeRaw: {
		category:  datatypes.RAW,
		converter: lengthOf(datatypes.RAW),
	},
	datatypes.NativeURowId: {
		category:  datatypes.UROWID,
		converter: lengthOf(datatypes.UROWID),
	},
	datatypes.NativeDate: {
		category: datatypes.DATE,
	},
	datatypes.NativeTimestamp: {
		converter: timestamp2portable,
	},
	datatypes.NativeIntervalDayToSecond: {
		converter: intervalDayToSecond2portable,
	},
	datatypes.NativeIntervalYearToMonth: {
		converter: intervalYearToMonth2portable,
	},
	datatypes.NativeLongRaw: {
		category: datatypes.LONG_RAW,
	},
	datatypes.NativeLong: {
		category: datatypes.LONG,
	},
	datatypes.NativeBlob: {
		category: datatypes.BLOB,
	},
	datatypes.NativeClob: {
		category: datatypes.CLOB,
	},
	datatypes.NativeNClob: {
		category: datatypes.NCLOB,
	},
	datatypes.NativeBFile: {
		category: datatypes.BFILE,
	},
	datatypes.NativeRowId: {
		category: datatypes.ROWID,
	},
	datatypes.NativeBoolean: {
		category: datatypes.BOOLEAN,
	},
	datatypes.NativeJson: {
		category: datatypes.JSON,
	},
}

// portableTypes maps every portable category to the native type
// used when no explicit native type hint is given
var portableTypes = map[datatypes.Category]portableRegistration{
	datatypes.INTEGER: {
		converter: integer2native,
	},
	datatypes.NUMERIC: {
		converter: numeric2native,
	},
	datatypes.FLOAT: {
		converter: float2native,
	},
	datatypes.DOUBLE: {
		converter: fixedFloat2native(doublePrecision),
	},
	datatypes.REAL: {
		converter: fixedFloat2native(realPrecision),
	},
	datatypes.BINARY_FLOAT: {
		nativeName: datatypes.NativeBinaryFloat,
	},
	datatypes.BINARY_DOUBLE: {
		nativeName: datatypes.NativeBinaryDouble,
	},
	datatypes.VARCHAR: {
		converter: length2native(datatypes.NativeVarchar2, datatypes.CharSemantics),
	},
	datatypes.NVARCHAR: {
		converter: length2native(datatypes.NativeNVarchar2, 0),
	},
	datatypes.CHAR: {
		converter: length2native(datatypes.NativeChar, datatypes.CharSemantics),
	},
	datatypes.NCHAR: {
		converter: length2native(datatypes.NativeNChar, 0),
	},
	datatypes.RAW: {
		converter: length2native(datatypes.NativeRaw, 0),
	},
	datatypes.UROWID: {
		converter: length2native(datatypes.NativeURowId, 0),
	},
	datatypes.DATE: {
		nativeName: datatypes.NativeDate,
	},
	datatypes.TIMESTAMP: {
		converter: timestamp2native,
	},
	datatypes.INTERVAL_DAY_TO_SECOND: {
		converter: intervalDayToSecond2native,
	},
	datatypes.INTERVAL_YEAR_TO_MONTH: {
		converter: intervalYearToMonth2native,
	},
	datatypes.LONG_RAW: {
		nativeName: datatypes.NativeLongRaw,
	},
	datatypes.LONG: {
		nativeName: datatypes.NativeLong,
	},
	datatypes.BLOB: {
		nativeName: datatypes.NativeBlob,
	},
	datatypes.CLOB: {
		nativeName: datatypes.NativeClob,
	},
	datatypes.NCLOB: {
		nativeName: datatypes.NativeNClob,
	},
	datatypes.BFILE: {
		nativeName: datatypes.NativeBFile,
	},
	datatypes.ROWID: {
		nativeName: datatypes.NativeRowId,
	},
	datatypes.BOOLEAN: {
		nativeName: datatypes.NativeBoolean,
	},
	datatypes.JSON: {
		nativeName: datatypes.NativeJson,
	},
}
