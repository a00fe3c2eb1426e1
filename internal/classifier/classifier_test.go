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

package classifier

import (
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_Classify_Object_Rows(
	t *testing.T,
) {

	cases := []struct {
		row      ObjectRow
		expected Classification
	}{
		{ObjectRow{Name: "T", ObjectType: "TABLE"}, Table},
		{ObjectRow{Name: "V", ObjectType: "VIEW"}, View},
		{ObjectRow{Name: "MV", ObjectType: "MATERIALIZED VIEW"}, MaterializedView},
		{ObjectRow{Name: "MV", ObjectType: "TABLE", IsMView: true}, Duplicate},
		{ObjectRow{Name: "TMP", ObjectType: "TABLE", Temporary: true}, TempTable},
		{ObjectRow{Name: "SYS_IOT_OVER_1", ObjectType: "TABLE", IOTType: lo.ToPtr("IOT_OVERFLOW")}, System},
		{ObjectRow{Name: "SYS_IOT_MAP_1", ObjectType: "TABLE", IOTType: lo.ToPtr("IOT_MAPPING")}, System},
		{ObjectRow{Name: "IOT", ObjectType: "TABLE", IOTType: lo.ToPtr("IOT")}, Table},
		{ObjectRow{Name: "SEQ", ObjectType: "SEQUENCE"}, Unclassified},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, Classify(c.row), c.row.Name)
	}
}

func Test_Dropped_Classifications_Have_No_Kind(
	t *testing.T,
) {

	for _, classification := range []Classification{Duplicate, System, Unclassified} {
		_, ok := classification.Kind()
		assert.False(t, ok, classification.String())
	}

	kind, ok := TempTable.Kind()
	assert.True(t, ok)
	assert.Equal(t, catalog.TempTable, kind)
}

func Test_Select_Filters_By_Kind(
	t *testing.T,
) {

	rows := []ObjectRow{
		{Name: "T1", ObjectType: "TABLE"},
		{Name: "MV", ObjectType: "MATERIALIZED VIEW"},
		{Name: "MV", ObjectType: "TABLE", IsMView: true},
		{Name: "V1", ObjectType: "VIEW"},
		{Name: "TMP", ObjectType: "TABLE", Temporary: true},
		{Name: "SYS_IOT_OVER_1", ObjectType: "TABLE", IOTType: lo.ToPtr("IOT_OVERFLOW")},
	}

	names := func(classified []Classified) []string {
		return lo.Map(classified, func(item Classified, _ int) string {
			return item.Name
		})
	}

	assert.Equal(t, []string{"T1"}, names(Select(rows, catalog.Table)))
	assert.Equal(t, []string{"MV", "V1"}, names(Select(rows, catalog.AnyView)))
	assert.Equal(t, []string{"TMP"}, names(Select(rows, catalog.TempTable)))
	assert.Equal(t, []string{"T1", "MV", "V1", "TMP"}, names(Select(rows, catalog.Any)))
	assert.Empty(t, Select(rows, 0))
}

func Test_Comment_Source_By_Kind(
	t *testing.T,
) {

	source, err := CommentSourceOf(catalog.View)
	assert.NoError(t, err)
	assert.Equal(t, TableComments, source)

	source, err = CommentSourceOf(catalog.MaterializedView)
	assert.NoError(t, err)
	assert.Equal(t, MViewComments, source)

	_, err = CommentSourceOf(catalog.AnyView)
	var mismatch *catalog.MetadataMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func Test_Definition_Source_By_Kind(
	t *testing.T,
) {

	source, err := DefinitionSourceOf(catalog.View)
	assert.NoError(t, err)
	assert.Equal(t, ViewDefinitions, source)

	source, err = DefinitionSourceOf(catalog.MaterializedView)
	assert.NoError(t, err)
	assert.Equal(t, MViewDefinitions, source)

	_, err = DefinitionSourceOf(catalog.Table)
	var mismatch *catalog.MetadataMismatchError
	assert.ErrorAs(t, err, &mismatch)
}
