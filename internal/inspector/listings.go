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
	"github.com/noctarius/catalog-reflector/internal/classifier"
	"github.com/noctarius/catalog-reflector/internal/naming"
	"github.com/noctarius/catalog-reflector/internal/scope"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"strings"
)

// GetTableNames lists the base tables of the requested schema. Tables
// stored in an excluded tablespace are not listed.
func (i *Inspector) GetTableNames(
	ctx context.Context, options catalog.Options,
) ([]string, error) {

	return i.listNames(ctx, options, catalog.Table, func(object classifier.Classified) bool {
		if object.Tablespace == nil {
			return true
		}
		return !i.excludeTablespaces[strings.ToUpper(*object.Tablespace)]
	})
}

func (i *Inspector) GetTempTableNames(
	ctx context.Context, options catalog.Options,
) ([]string, error) {

	return i.listNames(ctx, options, catalog.TempTable, nil)
}

func (i *Inspector) GetViewNames(
	ctx context.Context, options catalog.Options,
) ([]string, error) {

	return i.listNames(ctx, options, catalog.View, nil)
}

func (i *Inspector) GetMaterializedViewNames(
	ctx context.Context, options catalog.Options,
) ([]string, error) {

	return i.listNames(ctx, options, catalog.MaterializedView, nil)
}

// GetSchemaNames lists the schemas of the database, or of the remote
// database if a database link is requested
func (i *Inspector) GetSchemaNames(
	ctx context.Context, options catalog.Options,
) ([]string, error) {

	names, err := i.dictionary.ReadSchemaNames(ctx, options.DBLink)
	if err != nil {
		return nil, err
	}
	return naming.NormalizeAll(names), nil
}

func (i *Inspector) GetSequenceNames(
	ctx context.Context, options catalog.Options,
) ([]string, error) {

	s, err := scope.Resolve(ctx, i.dictionary, options)
	if err != nil {
		return nil, err
	}

	names, err := i.dictionary.ReadSequenceNames(ctx, s.Owner, s.DBLink)
	if err != nil {
		return nil, err
	}
	return naming.NormalizeAll(names), nil
}

func (i *Inspector) listNames(
	ctx context.Context, options catalog.Options, kind catalog.ObjectKind,
	accept func(object classifier.Classified) bool,
) ([]string, error) {

	s, err := scope.Resolve(ctx, i.dictionary, options)
	if err != nil {
		return nil, err
	}

	rows, err := i.dictionary.ReadObjects(ctx, s.Owner, s.DBLink, naming.DenormalizeAll(options.FilterNames))
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(classifier.Select(rows, kind), func(object classifier.Classified, _ int) (string, bool) {
		if accept != nil && !accept(object) {
			return "", false
		}
		return naming.Normalize(object.Name), true
	}), nil
}
