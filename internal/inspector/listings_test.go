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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func createListingObjects(
	t *testing.T, fixture *testsupport.Dictionary,
) {

	require.NoError(t, fixture.CreateTable(testsupport.Table{Owner: "SCOTT", Name: "EMP"}))
	require.NoError(t, fixture.CreateTable(testsupport.Table{Owner: "SCOTT", Name: "SESSION_DATA", Temporary: true}))
	require.NoError(t, fixture.CreateTable(testsupport.Table{Owner: "SCOTT", Name: "IOT_TABLE", IOTType: "IOT"}))
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "SYS_IOT_OVER_1001", IOTType: "IOT_OVERFLOW",
	}))
	require.NoError(t, fixture.CreateTable(testsupport.Table{
		Owner: "SCOTT", Name: "SYS_IOT_MAP_1001", IOTType: "IOT_MAPPING", Temporary: true,
	}))
	require.NoError(t, fixture.CreateTable(testsupport.Table{Owner: "SCOTT", Name: "AUDIT_LOG", Tablespace: "SYSAUX"}))
	require.NoError(t, fixture.CreateTable(testsupport.Table{Owner: "SCOTT", Name: "OLD", Dropped: true}))
	require.NoError(t, fixture.CreateView("SCOTT", "EMP_V", "SELECT * FROM emp", nil))
	require.NoError(t, fixture.CreateMaterializedView("SCOTT", "EMP_MV", "SELECT * FROM emp", nil))
}

func Test_Table_Names_Exclude_Temporary_System_And_Materialized_Views(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	createListingObjects(t, fixture)
	i, _ := newTestInspector(t, fixture, Settings{})
	ctx := context.Background()

	tables, err := i.GetTableNames(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"emp", "iot_table"}, tables)

	temporary, err := i.GetTempTableNames(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"session_data"}, temporary)

	views, err := i.GetViewNames(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"emp_v"}, views)

	mviews, err := i.GetMaterializedViewNames(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"emp_mv"}, mviews)
}

func Test_Table_Names_With_Custom_Excluded_Tablespaces(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	createListingObjects(t, fixture)
	i, _ := newTestInspector(t, fixture, Settings{ExcludeTablespaces: []string{"users"}})

	tables, err := i.GetTableNames(context.Background(), catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"audit_log"}, tables)
}

func Test_Schema_And_Sequence_Names(
	t *testing.T,
) {

	fixture := newTestFixture(t)
	require.NoError(t, fixture.CreateUser("SCOTT"))
	require.NoError(t, fixture.CreateUser("HR"))
	require.NoError(t, fixture.CreateUser("MixedCase"))
	require.NoError(t, fixture.CreateSequence("SCOTT", "EMP_SEQ"))
	require.NoError(t, fixture.CreateSequence("HR", "HR_SEQ"))
	i, _ := newTestInspector(t, fixture, Settings{})
	ctx := context.Background()

	schemas, err := i.GetSchemaNames(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"scott", "hr", "MixedCase"}, schemas)

	sequences, err := i.GetSequenceNames(ctx, catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"emp_seq"}, sequences)

	sequences, err = i.GetSequenceNames(ctx, catalog.Options{Schema: "hr"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hr_seq"}, sequences)
}
