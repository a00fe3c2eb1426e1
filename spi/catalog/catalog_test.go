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

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/big"
	"testing"
)

func Test_Object_Kind_Names(
	t *testing.T,
) {

	assert.Equal(t, "TABLE", Table.String())
	assert.Equal(t, "ANY_VIEW", AnyView.String())
	assert.Equal(t, "ANY", Any.String())
	assert.Equal(t, "TABLE|VIEW", (Table | View).String())

	kind, err := ParseObjectKind("materialized view")
	require.NoError(t, err)
	assert.Equal(t, MaterializedView, kind)

	kind, err = ParseObjectKind("TABLE|VIEW")
	require.NoError(t, err)
	assert.Equal(t, Table|View, kind)

	_, err = ParseObjectKind("SEQUENCE")
	assert.Error(t, err)
}

func Test_Object_Kind_Sets(
	t *testing.T,
) {

	assert.True(t, AnyView.Contains(MaterializedView))
	assert.False(t, AnyView.Contains(Table))
	assert.False(t, Table.Contains(0))
	assert.True(t, TempTable.Concrete())
	assert.False(t, AnyView.Concrete())
	assert.Equal(t, []ObjectKind{View, MaterializedView}, AnyView.Kinds())
}

func Test_Default_Identity(
	t *testing.T,
) {

	identity := DefaultIdentity()
	assert.Equal(t, "9999999999999999999999999999", identity.MaxValue.String())
	assert.Equal(t, int64(20), identity.Cache)
	assert.False(t, identity.Always)
	assert.False(t, identity.Cycle)

	other := DefaultIdentity()
	assert.True(t, identity.Equal(other))

	other.Start = big.NewInt(2)
	assert.False(t, identity.Equal(other))
}

func Test_Object_Ref_Rendering(
	t *testing.T,
) {

	assert.Equal(t, "SCOTT.EMP@REMOTE", ObjectRef{Owner: "SCOTT", Name: "EMP", DBLink: "REMOTE"}.String())
	assert.Equal(t, "EMP", ObjectRef{Name: "EMP"}.String())
	assert.Equal(t, "alt.parent", ObjectKey{Schema: "alt", Name: "parent"}.String())
}
