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

package filtering

import (
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/noctarius/catalog-reflector/spi/config"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Empty_Condition_Accepts_Everything(
	t *testing.T,
) {

	filter, err := NewObjectFilter(config.ObjectFilterConfig{})
	require.NoError(t, err)

	accepted, err := filter.Accept(catalog.ObjectKey{Name: "emp"}, catalog.Table)
	require.NoError(t, err)
	assert.True(t, accepted)
}

func Test_Condition_Evaluates_Object_Attributes(
	t *testing.T,
) {

	filter, err := NewObjectFilter(config.ObjectFilterConfig{
		Condition: `kind == "TABLE" && name startsWith "emp"`,
	})
	require.NoError(t, err)

	cases := []struct {
		key      catalog.ObjectKey
		kind     catalog.ObjectKind
		expected bool
	}{
		{catalog.ObjectKey{Name: "emp"}, catalog.Table, true},
		{catalog.ObjectKey{Schema: "hr", Name: "employees"}, catalog.Table, true},
		{catalog.ObjectKey{Name: "emp_v"}, catalog.View, false},
		{catalog.ObjectKey{Name: "dept"}, catalog.Table, false},
	}

	for _, c := range cases {
		accepted, err := filter.Accept(c.key, c.kind)
		require.NoError(t, err)
		assert.Equal(t, c.expected, accepted, c.key.String())
	}
}

func Test_Default_Value_False_Inverts_Condition(
	t *testing.T,
) {

	filter, err := NewObjectFilter(config.ObjectFilterConfig{
		DefaultValue: lo.ToPtr(false),
		Condition:    `schema == "audit"`,
	})
	require.NoError(t, err)

	accepted, err := filter.Accept(catalog.ObjectKey{Schema: "audit", Name: "log"}, catalog.Table)
	require.NoError(t, err)
	assert.False(t, accepted)

	accepted, err = filter.Accept(catalog.ObjectKey{Schema: "hr", Name: "log"}, catalog.Table)
	require.NoError(t, err)
	assert.True(t, accepted)
}

func Test_Illegal_Condition_Fails(
	t *testing.T,
) {

	_, err := NewObjectFilter(config.ObjectFilterConfig{Condition: `name +`})
	assert.Error(t, err)

	_, err = NewObjectFilter(config.ObjectFilterConfig{Condition: `name`})
	assert.Error(t, err)
}
