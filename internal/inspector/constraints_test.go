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
	"github.com/noctarius/catalog-reflector/testsupport"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func createChild(
	t *testing.T, fixture *testsupport.Dictionary,
) {

	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "CHILD",
		Columns: []testsupport.Column{
			integerColumn("ID", true), integerColumn("PARENT_ID", false), integerColumn("ALT_ID", false),
		},
	}))
	require.NoError(t, fixture.AddPrimaryKey("SCOTT", "CHILD", "CHILD_PK", "ID"))
	require.NoError(t, fixture.AddForeignKey(testsupport.ForeignKey{
		Owner: "SCOTT", Table: "CHILD", Name: "CHILD_PARENT_FK", Columns: []string{"PARENT_ID"},
		ReferredConstraint: "PARENT_PK", DeleteRule: "CASCADE",
	}))
	require.NoError(t, fixture.AddForeignKey(testsupport.ForeignKey{
		Owner: "SCOTT", Table: "CHILD", Name: "CHILD_ALT_FK", Columns: []string{"ALT_ID"},
		ReferredOwner: "ALT", ReferredConstraint: "ALT_PARENT_PK",
	}))
}

func Test_Primary_Key_And_Empty_Primary_Key(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "COMPOSITE",
		Columns: []testsupport.Column{integerColumn("A", true), integerColumn("B", true)},
	}))
	require.NoError(t, fixture.AddPrimaryKey("SCOTT", "COMPOSITE", "COMPOSITE_PK", "B", "A"))
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "NOKEY", Columns: []testsupport.Column{integerColumn("A", false)},
	}))
	i, _ := newTestInspector(t, fixture, Settings{})

	primaryKeys, err := i.GetMultiPrimaryKey(context.Background(), catalog.Options{})
	require.NoError(t, err)

	assert.Equal(t, map[catalog.ObjectKey]catalog.PrimaryKey{
		key("", "composite"): {Name: "composite_pk", ConstrainedColumns: []string{"b", "a"}},
		key("", "nokey"):     {ConstrainedColumns: []string{}},
	}, primaryKeys)
}

func Test_Foreign_Keys_Report_Referred_Schema(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	createParents(t, fixture)
	createChild(t, fixture)
	i, _ := newTestInspector(t, fixture, Settings{})
	ctx := context.Background()

	foreignKeys, err := i.GetForeignKeys(ctx, "child", catalog.Options{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []catalog.ForeignKey{
		{
			Name:               "child_alt_fk",
			ConstrainedColumns: []string{"alt_id"},
			ReferredSchema:     "alt",
			ReferredTable:      "parent",
			ReferredColumns:    []string{"id"},
			Options:            map[string]string{},
		},
		{
			Name:               "child_parent_fk",
			ConstrainedColumns: []string{"parent_id"},
			ReferredTable:      "parent",
			ReferredColumns:    []string{"id"},
			Options:            map[string]string{catalog.OptionOnDelete: "CASCADE"},
		},
	}, foreignKeys)

	explicit, err := i.GetForeignKeys(ctx, "child", catalog.Options{Schema: "scott"})
	require.NoError(t, err)
	referredSchemas := lo.Map(explicit, func(foreignKey catalog.ForeignKey, _ int) string {
		return foreignKey.ReferredSchema
	})
	assert.ElementsMatch(t, []string{"alt", "scott"}, referredSchemas)
}

func Test_Translate_Map_Is_Not_Applied_To_Other_Owners(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	createParents(t, fixture)
	createChild(t, fixture)
	i, _ := newTestInspector(t, fixture, Settings{})

	options := catalog.Options{
		Schema:             "tenant",
		SchemaTranslateMap: catalog.SchemaTranslateMap{"tenant": "scott", "alt": "elsewhere"},
	}
	foreignKeys, err := i.GetMultiForeignKeys(context.Background(), options)
	require.NoError(t, err)

	child := foreignKeys[key("tenant", "child")]
	require.Len(t, child, 2)
	referredSchemas := lo.SliceToMap(child, func(foreignKey catalog.ForeignKey) (string, string) {
		return foreignKey.Name, foreignKey.ReferredSchema
	})
	assert.Equal(t, map[string]string{"child_parent_fk": "tenant", "child_alt_fk": "alt"}, referredSchemas)
}

func Test_Foreign_Key_Refers_To_Synonym_Name(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	createParents(t, fixture)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "ALT", Name: "CHILD",
		Columns: []testsupport.Column{integerColumn("ID", true), integerColumn("PARENT_ID", false)},
	}))
	require.NoError(t, fixture.AddForeignKey(testsupport.ForeignKey{
		Owner: "ALT", Table: "CHILD", Name: "ALT_CHILD_FK", Columns: []string{"PARENT_ID"},
		ReferredConstraint: "ALT_PARENT_PK",
	}))
	require.NoError(t, fixture.CreateSynonym("SCOTT", "ALT_CHILD", "ALT", "CHILD", ""))
	require.NoError(t, fixture.CreateSynonym("SCOTT", "ALT_PT", "ALT", "PARENT", ""))
	i, _ := newTestInspector(t, fixture, Settings{})

	foreignKeys, err := i.GetForeignKeys(context.Background(), "alt_child", catalog.Options{ResolveSynonyms: true})
	require.NoError(t, err)
	require.Len(t, foreignKeys, 1)
	assert.Equal(t, "alt_pt", foreignKeys[0].ReferredTable)
	assert.Equal(t, "", foreignKeys[0].ReferredSchema)
	assert.Equal(t, []string{"parent_id"}, foreignKeys[0].ConstrainedColumns)
}

func Test_Unique_Constraints_Report_Backing_Index(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "T",
		Columns: []testsupport.Column{integerColumn("A", false), integerColumn("B", false)},
	}))
	require.NoError(t, fixture.AddUniqueConstraint("SCOTT", "T", "T_UQ", "B", "A"))
	i, _ := newTestInspector(t, fixture, Settings{})

	uniques, err := i.GetUniqueConstraints(context.Background(), "t", catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []catalog.UniqueConstraint{
		{Name: "t_uq", ColumnNames: []string{"b", "a"}, DuplicatesIndex: "t_uq"},
	}, uniques)
}

func Test_Check_Constraints_Hide_System_Not_Null_Checks(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "FOO", Columns: []testsupport.Column{integerColumn("ID", true)},
	}))
	require.NoError(t, fixture.AddCheckConstraint("SCOTT", "FOO", "SYS_C001", `"ID" IS NOT NULL`, "ID"))
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "BAR",
		Columns: []testsupport.Column{integerColumn("ID", true), integerColumn("DATA", false)},
	}))
	require.NoError(t, fixture.AddCheckConstraint("SCOTT", "BAR", "SYS_C002", `"ID" IS NOT NULL`, "ID"))
	require.NoError(t, fixture.AddCheckConstraint("SCOTT", "BAR", "BAR_CHECK", "data > 42", "DATA"))
	i, _ := newTestInspector(t, fixture, Settings{})
	ctx := context.Background()

	checks, err := i.GetCheckConstraints(ctx, "foo", catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []catalog.CheckConstraint{}, checks)

	checks, err = i.GetCheckConstraints(ctx, "foo", catalog.Options{IncludeAll: true})
	require.NoError(t, err)
	assert.Equal(t, []catalog.CheckConstraint{{Name: "sys_c001", SQLText: `"ID" IS NOT NULL`}}, checks)

	all, err := i.GetMultiCheckConstraints(ctx, catalog.Options{IncludeAll: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []catalog.CheckConstraint{
		{Name: "bar_check", SQLText: "data > 42"},
		{Name: "sys_c002", SQLText: `"ID" IS NOT NULL`},
	}, all[key("", "bar")])

	visible, err := i.GetMultiCheckConstraints(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []catalog.CheckConstraint{{Name: "bar_check", SQLText: "data > 42"}}, visible[key("", "bar")])
}

func Test_Check_Constraints_Without_Columns(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "FOO", Columns: []testsupport.Column{integerColumn("ID", true)},
	}))
	require.NoError(t, fixture.AddCheckConstraint("SCOTT", "FOO", "FOO_TRUE", "1 = 1"))
	i, _ := newTestInspector(t, fixture, Settings{})
	ctx := context.Background()

	checks, err := i.GetCheckConstraints(ctx, "foo", catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []catalog.CheckConstraint{{Name: "foo_true", SQLText: "1 = 1"}}, checks)

	all, err := i.GetMultiCheckConstraints(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, checks, all[key("", "foo")])
}
