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
	"github.com/noctarius/catalog-reflector/internal/naming"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"strings"
)

// OwnerSource provides the owners a request without explicit schema
// resolves to
type OwnerSource interface {
	DefaultSchema(ctx context.Context) (string, error)
	ReadDatabaseLinkOwner(ctx context.Context, dbLink string) (*string, error)
}

// Scope is the resolved target of a request. Owner is the physical
// (denormalized) owner the catalog queries run against, Schema the
// schema as requested (normalized, empty if none was requested).
type Scope struct {
	Owner  string
	Schema string
	DBLink string
}

// Resolve computes the scope of a request. An explicit schema is
// substituted through the translate map. Without a schema the
// translate map entry for NoSchema wins, then the configured user
// of the database link, then the default schema of the session.
func Resolve(
	ctx context.Context, source OwnerSource, options catalog.Options,
) (Scope, error) {

	scope := Scope{
		DBLink: strings.ToUpper(options.DBLink),
	}

	if options.Schema != catalog.NoSchema {
		physical := options.Schema
		if mapped, present := lookup(options.SchemaTranslateMap, options.Schema); present {
			physical = mapped
		}
		scope.Owner = naming.Denormalize(physical)
		scope.Schema = naming.Normalize(options.Schema)
		return scope, nil
	}

	if mapped, present := options.SchemaTranslateMap[catalog.NoSchema]; present && mapped != "" {
		scope.Owner = naming.Denormalize(mapped)
		return scope, nil
	}

	if scope.DBLink != "" {
		owner, err := source.ReadDatabaseLinkOwner(ctx, scope.DBLink)
		if err != nil {
			return Scope{}, err
		}
		if owner != nil && *owner != "" {
			scope.Owner = strings.ToUpper(*owner)
			return scope, nil
		}
	}

	defaultSchema, err := source.DefaultSchema(ctx)
	if err != nil {
		return Scope{}, err
	}
	scope.Owner = strings.ToUpper(defaultSchema)
	return scope, nil
}

// Key returns the result key of an object in this scope
func (s Scope) Key(
	name string,
) catalog.ObjectKey {

	return catalog.ObjectKey{
		Schema: s.Schema,
		Name:   naming.Normalize(name),
	}
}

// ReferredSchema returns the schema a foreign key reports for the
// owner of its referred table. The physical owner of the scope is
// reported as requested, any other owner as is (normalized).
func (s Scope) ReferredSchema(
	remoteOwner string,
) string {

	if remoteOwner == "" || remoteOwner == s.Owner {
		return s.Schema
	}
	return naming.Normalize(remoteOwner)
}

// Ref returns the object reference of a physical object name in
// this scope
func (s Scope) Ref(
	name string, kind catalog.ObjectKind,
) catalog.ObjectRef {

	return catalog.ObjectRef{
		Owner:  s.Owner,
		Name:   name,
		DBLink: s.DBLink,
		Kind:   kind,
	}
}

// lookup finds the translate map entry of a schema, either by the
// name as given or by its normalized or denormalized form
func lookup(
	translateMap catalog.SchemaTranslateMap, schema string,
) (string, bool) {

	if translateMap == nil {
		return "", false
	}
	for _, candidate := range []string{schema, naming.Normalize(schema), naming.Denormalize(schema)} {
		if mapped, present := translateMap[candidate]; present {
			return mapped, true
		}
	}
	return "", false
}
