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

package inspector

import (
	"context"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/noctarius/catalog-reflector/spi/datatypes"
	"github.com/noctarius/catalog-reflector/testsupport"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Columns_Map_Types_And_Skip_Hidden_Columns(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "TYPES",
		Columns: []testsupport.Column{
			integerColumn("ID", true),
			{Name: "AMOUNT", DataType: "NUMBER", Precision: lo.ToPtr(10), Scale: lo.ToPtr(2)},
			{Name: "RATIO", DataType: "FLOAT", Precision: lo.ToPtr(126)},
			{Name: "LABEL", DataType: "NVARCHAR2", Length: lo.ToPtr(40), CharLength: lo.ToPtr(20),
				Comment: lo.ToPtr("the label")},
			{Name: "CREATED", DataType: "TIMESTAMP(6) WITH TIME ZONE", Scale: lo.ToPtr(6),
				Default: lo.ToPtr("SYSTIMESTAMP")},
			{Name: "SYS_HIDDEN", DataType: "NUMBER", Hidden: true},
		},
	}))
	i, _ := newTestInspector(t, fixture, Settings{})

	columns, err := i.GetColumns(context.Background(), "types", catalog.Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"id", "amount", "ratio", "label", "created"}, columnNames(columns))

	assert.Equal(t, datatypes.INTEGER, columns[0].Type.Category)
	assert.False(t, columns[0].Nullable)

	assert.Equal(t, datatypes.NUMERIC, columns[1].Type.Category)
	assert.Equal(t, 10, *columns[1].Type.Precision)
	assert.Equal(t, 2, *columns[1].Type.Scale)
	assert.True(t, columns[1].Nullable)

	assert.Equal(t, datatypes.DOUBLE, columns[2].Type.Category)

	assert.Equal(t, datatypes.NVARCHAR, columns[3].Type.Category)
	assert.Equal(t, 20, *columns[3].Type.Length)
	assert.Equal(t, "the label", *columns[3].Comment)

	assert.Equal(t, datatypes.TIMESTAMP, columns[4].Type.Category)
	assert.True(t, columns[4].Type.Timezone)
	assert.Equal(t, "TIMESTAMP(6) WITH TIME ZONE", columns[4].NativeType.String())
	assert.Equal(t, "SYSTIMESTAMP", *columns[4].Default)
}

func Test_Identity_Column_With_On_Null_Reflects_Defaults(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "T",
		Columns: []testsupport.Column{{
			Name: "ID", DataType: "NUMBER", Scale: lo.ToPtr(0), NotNull: true,
			Default:  lo.ToPtr(`"SCOTT"."ISEQ$$_1001".nextval`),
			Identity: "BY DEFAULT", DefaultOnNull: true,
		}},
	}))
	i, _ := newTestInspector(t, fixture, Settings{})

	columns, err := i.GetColumns(context.Background(), "t", catalog.Options{})
	require.NoError(t, err)
	require.Len(t, columns, 1)

	identity := columns[0].Identity
	require.NotNil(t, identity)
	assert.True(t, identity.OnNull)
	assert.False(t, identity.Always)
	assert.Equal(t, int64(1), identity.Start.Int64())
	assert.Equal(t, int64(1), identity.Increment.Int64())
	assert.False(t, identity.Cycle)
	assert.False(t, identity.Order)

	expected := catalog.DefaultIdentity()
	expected.OnNull = true
	assert.True(t, expected.Equal(*identity))
	assert.Nil(t, columns[0].Default)
}

func Test_Identity_Column_Always_With_Options(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "T",
		Columns: []testsupport.Column{{
			Name: "ID", DataType: "NUMBER", Scale: lo.ToPtr(0), NotNull: true,
			Identity: "ALWAYS",
			IdentityOptions: "START WITH: 42, INCREMENT BY: 7, MAX_VALUE: 1000, MIN_VALUE: 1, " +
				"CYCLE_FLAG: Y, CACHE_SIZE: 0, ORDER_FLAG: Y, SCALE_FLAG: N, EXTEND_FLAG: N, " +
				"SESSION_FLAG: N, KEEP_VALUE: N",
		}},
	}))
	i, _ := newTestInspector(t, fixture, Settings{})

	columns, err := i.GetColumns(context.Background(), "t", catalog.Options{})
	require.NoError(t, err)

	identity := columns[0].Identity
	require.NotNil(t, identity)
	assert.True(t, identity.Always)
	assert.False(t, identity.OnNull)
	assert.Equal(t, int64(42), identity.Start.Int64())
	assert.Equal(t, int64(7), identity.Increment.Int64())
	assert.Equal(t, int64(1000), identity.MaxValue.Int64())
	assert.True(t, identity.Cycle)
	assert.True(t, identity.Order)
	assert.Equal(t, int64(0), identity.Cache)
}

func Test_Legacy_Server_Reflects_No_Identity(
	t *testing.T,
) {

	fixture, err := testsupport.NewDictionary("SCOTT", "11.2.0.4.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		fixture.Close()
	})
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "T", Columns: []testsupport.Column{integerColumn("ID", true)},
	}))
	i, _ := newTestInspector(t, fixture, Settings{})

	columns, err := i.GetColumns(context.Background(), "t", catalog.Options{})
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Nil(t, columns[0].Identity)
}

func Test_Virtual_Column_Is_Computed(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "T",
		Columns: []testsupport.Column{
			integerColumn("A", false),
			{Name: "DOUBLED", DataType: "NUMBER", Virtual: true, Default: lo.ToPtr(`"A"*2`)},
		},
	}))
	i, _ := newTestInspector(t, fixture, Settings{})

	columns, err := i.GetColumns(context.Background(), "t", catalog.Options{})
	require.NoError(t, err)
	require.Len(t, columns, 2)

	assert.Nil(t, columns[0].Computed)
	require.NotNil(t, columns[1].Computed)
	assert.Equal(t, `"A"*2`, columns[1].Computed.SQLText)
	assert.False(t, columns[1].Computed.Persisted)
	assert.Nil(t, columns[1].Default)
}

func Test_Unsupported_Type_Degrades_Column_And_Warns(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "DOCS",
		Columns: []testsupport.Column{
			integerColumn("ID", true),
			{Name: "BODY", DataType: "XMLTYPE"},
		},
	}))

	warnings := make([]*catalog.UnsupportedTypeWarning, 0)
	i, _ := newTestInspector(t, fixture, Settings{
		WarningHandler: func(warning *catalog.UnsupportedTypeWarning) {
			warnings = append(warnings, warning)
		},
	})

	columns, err := i.GetMultiColumns(context.Background(), catalog.Options{})
	require.NoError(t, err)

	docs := columns[key("", "docs")]
	require.Len(t, docs, 2)
	assert.Equal(t, datatypes.INTEGER, docs[0].Type.Category)
	assert.Equal(t, datatypes.UNKNOWN, docs[1].Type.Category)

	require.Len(t, warnings, 1)
	assert.Equal(t, key("", "docs"), warnings[0].Object)
	assert.Equal(t, "body", warnings[0].Column)
	assert.Equal(t, "XMLTYPE", warnings[0].NativeType)
}

func Test_Parse_Identity_Rejects_Illegal_Numbers(
	t *testing.T,
) {

	_, err := parseIdentity("ALWAYS,START WITH: abc", false)
	assert.Error(t, err)

	identity, err := parseIdentity("BY DEFAULT", true)
	require.NoError(t, err)
	assert.False(t, identity.Always)
	assert.True(t, identity.OnNull)
}
