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

import (
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Parse_Native_Type_Declarations(
	t *testing.T,
) {

	cases := map[string]NativeType{
		"NUMBER":                            {Name: NativeNumber},
		"NUMBER(10)":                        {Name: NativeNumber, Precision: lo.ToPtr(10)},
		"NUMBER(10,2)":                      {Name: NativeNumber, Precision: lo.ToPtr(10), Scale: lo.ToPtr(2)},
		"NUMBER(*,0)":                       {Name: NativeNumber, Scale: lo.ToPtr(0)},
		"FLOAT(16)":                         {Name: NativeFloat, Precision: lo.ToPtr(16)},
		"FLOAT":                             {Name: NativeFloat},
		"BINARY_DOUBLE":                     {Name: NativeBinaryDouble},
		"VARCHAR2(42 CHAR)":                 {Name: NativeVarchar2, Length: lo.ToPtr(42), Variants: CharSemantics},
		"VARCHAR2(42 BYTE)":                 {Name: NativeVarchar2, Length: lo.ToPtr(42), Variants: ByteSemantics},
		"NVARCHAR2(42)":                     {Name: NativeNVarchar2, Length: lo.ToPtr(42)},
		"CHAR(3 CHAR)":                      {Name: NativeChar, Length: lo.ToPtr(3), Variants: CharSemantics},
		"RAW(16)":                           {Name: NativeRaw, Length: lo.ToPtr(16)},
		"LONG RAW":                          {Name: NativeLongRaw},
		"TIMESTAMP(6)":                      {Name: NativeTimestamp, Precision: lo.ToPtr(6)},
		"TIMESTAMP WITH TIME ZONE":          {Name: NativeTimestamp, Variants: WithTimeZone},
		"TIMESTAMP(3) WITH LOCAL TIME ZONE": {Name: NativeTimestamp, Precision: lo.ToPtr(3), Variants: WithLocalTimeZone},
		"INTERVAL DAY(2) TO SECOND(6)":      {Name: NativeIntervalDayToSecond, Precision: lo.ToPtr(2), Scale: lo.ToPtr(6)},
		"INTERVAL YEAR(4) TO MONTH":         {Name: NativeIntervalYearToMonth, Precision: lo.ToPtr(4)},
	}

	for declaration, expected := range cases {
		actual, err := ParseNativeType(declaration)
		require.NoError(t, err, declaration)
		assert.Equal(t, expected, actual, declaration)
		assert.Equal(t, declaration, actual.String())
	}
}

func Test_Parse_Native_Type_Aliases(
	t *testing.T,
) {

	integer, err := ParseNativeType("integer")
	require.NoError(t, err)
	assert.Equal(t, "NUMBER(*,0)", integer.String())

	double, err := ParseNativeType("double  precision")
	require.NoError(t, err)
	assert.Equal(t, "FLOAT(126)", double.String())

	decimal, err := ParseNativeType("decimal(5, 2)")
	require.NoError(t, err)
	assert.Equal(t, "NUMBER(5,2)", decimal.String())
}

func Test_Parse_Native_Type_Rejects_Illegal_Declarations(
	t *testing.T,
) {

	for _, declaration := range []string{
		"", "FLOAT(10,2)", "DATE(3)", "NVARCHAR2(10 BYTE)", "GEOMETRY", "NUMBER(10 CHAR)", "(10)",
	} {
		_, err := ParseNativeType(declaration)
		assert.Error(t, err, declaration)
	}
}

func Test_Portable_Type_Rendering(
	t *testing.T,
) {

	assert.Equal(t, "INTEGER", PortableType{Category: INTEGER}.String())
	assert.Equal(t, "NUMERIC(5, 2)", PortableType{Category: NUMERIC, Precision: lo.ToPtr(5), Scale: lo.ToPtr(2)}.String())
	assert.Equal(t, "DOUBLE PRECISION", PortableType{Category: DOUBLE}.String())
	assert.Equal(t, "FLOAT(5)", PortableType{Category: FLOAT, Precision: lo.ToPtr(5)}.String())
	assert.Equal(t, "VARCHAR(125)", PortableType{Category: VARCHAR, Length: lo.ToPtr(125)}.String())
	assert.Equal(t, "TIMESTAMP WITH LOCAL TIME ZONE", PortableType{Category: TIMESTAMP, LocalTimezone: true}.String())
	assert.Equal(t, "LONG RAW", PortableType{Category: LONG_RAW}.String())
}

func Test_Category_Compatibility(
	t *testing.T,
) {

	assert.True(t, FLOAT.Compatible(DOUBLE))
	assert.True(t, BINARY_FLOAT.Compatible(BINARY_DOUBLE))
	assert.False(t, FLOAT.Compatible(BINARY_FLOAT))
	assert.False(t, BINARY_DOUBLE.Compatible(NUMERIC))
	assert.True(t, VARCHAR.Compatible(NVARCHAR))
	assert.False(t, VARCHAR.Compatible(CHAR))
	assert.False(t, UNKNOWN.Compatible(UNKNOWN))
}
