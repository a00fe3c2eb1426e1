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

package scope

import (
	"context"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type staticOwnerSource struct {
	defaultSchema string
	linkOwners    map[string]string
	calls         int
}

func (s *staticOwnerSource) DefaultSchema(
	_ context.Context,
) (string, error) {

	s.calls++
	return s.defaultSchema, nil
}

func (s *staticOwnerSource) ReadDatabaseLinkOwner(
	_ context.Context, dbLink string,
) (*string, error) {

	s.calls++
	if owner, present := s.linkOwners[dbLink]; present {
		return lo.ToPtr(owner), nil
	}
	if dbLink == "BROKEN" {
		return nil, errors.Errorf("broken link")
	}
	return nil, nil
}

func newSource() *staticOwnerSource {
	return &staticOwnerSource{
		defaultSchema: "SCOTT",
		linkOwners:    map[string]string{"REMOTE": "SCOTT_REMOTE"},
	}
}

func Test_Default_Schema(
	t *testing.T,
) {

	scope, err := Resolve(context.Background(), newSource(), catalog.Options{})
	require.NoError(t, err)
	assert.Equal(t, Scope{Owner: "SCOTT"}, scope)
	assert.Equal(t, catalog.ObjectKey{Name: "emp"}, scope.Key("EMP"))
}

func Test_Explicit_Schema_Is_Denormalized(
	t *testing.T,
) {

	source := newSource()
	scope, err := Resolve(context.Background(), source, catalog.Options{Schema: "hr"})
	require.NoError(t, err)
	assert.Equal(t, "HR", scope.Owner)
	assert.Equal(t, "hr", scope.Schema)
	assert.Zero(t, source.calls)
}

func Test_Translate_Map_Substitutes_Explicit_Schema(
	t *testing.T,
) {

	scope, err := Resolve(context.Background(), newSource(), catalog.Options{
		Schema:             "foo",
		SchemaTranslateMap: catalog.SchemaTranslateMap{"foo": "bar"},
	})
	require.NoError(t, err)
	assert.Equal(t, "BAR", scope.Owner)
	assert.Equal(t, "foo", scope.Schema)
	assert.Equal(t, catalog.ObjectKey{Schema: "foo", Name: "t"}, scope.Key("T"))
}

func Test_Translate_Map_Entry_For_No_Schema(
	t *testing.T,
) {

	source := newSource()
	scope, err := Resolve(context.Background(), source, catalog.Options{
		SchemaTranslateMap: catalog.SchemaTranslateMap{catalog.NoSchema: "app"},
	})
	require.NoError(t, err)
	assert.Equal(t, "APP", scope.Owner)
	assert.Equal(t, "", scope.Schema)
	assert.Zero(t, source.calls)
}

func Test_Database_Link_Owner(
	t *testing.T,
) {

	scope, err := Resolve(context.Background(), newSource(), catalog.Options{DBLink: "remote"})
	require.NoError(t, err)
	assert.Equal(t, Scope{Owner: "SCOTT_REMOTE", DBLink: "REMOTE"}, scope)

	scope, err = Resolve(context.Background(), newSource(), catalog.Options{DBLink: "CURRENT_USER_LINK"})
	require.NoError(t, err)
	assert.Equal(t, Scope{Owner: "SCOTT", DBLink: "CURRENT_USER_LINK"}, scope)

	_, err = Resolve(context.Background(), newSource(), catalog.Options{DBLink: "BROKEN"})
	assert.Error(t, err)
}

func Test_Referred_Schema_Of_Physical_Owner_Reports_Requested_Schema(
	t *testing.T,
) {

	scope := Scope{Owner: "BAR", Schema: "foo"}
	assert.Equal(t, "foo", scope.ReferredSchema("BAR"))
	// other owners are never translated
	assert.Equal(t, "other", scope.ReferredSchema("OTHER"))
	assert.Equal(t, "MixedCase", scope.ReferredSchema("MixedCase"))

	scope = Scope{Owner: "SCOTT"}
	assert.Equal(t, "", scope.ReferredSchema("SCOTT"))
	assert.Equal(t, "hr", scope.ReferredSchema("HR"))
}
