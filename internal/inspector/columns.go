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
	"github.com/noctarius/catalog-reflector/internal/dictionary"
	"github.com/noctarius/catalog-reflector/internal/naming"
	"github.com/noctarius/catalog-reflector/internal/typemapper"
	"github.com/noctarius/catalog-reflector/spi/catalog"
)

func (i *Inspector) GetColumns(
	ctx context.Context, name string, options catalog.Options,
) ([]catalog.Column, error) {

	return single(ctx, name, options, i.GetMultiColumns)
}

func (i *Inspector) GetMultiColumns(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey][]catalog.Column, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	return collect(ctx, targets,
		func(ctx context.Context, t *target) ([]dictionary.ColumnRow, error) {
			return i.dictionary.ReadColumns(ctx, t.scope.Owner, t.scope.DBLink, t.names())
		},
		func(row dictionary.ColumnRow) string {
			return row.TableName
		},
		func(_ *target, key catalog.ObjectKey, rows []dictionary.ColumnRow) ([]catalog.Column, error) {
			columns := make([]catalog.Column, 0, len(rows))
			for _, row := range rows {
				column, err := i.column(key, row)
				if err != nil {
					return nil, err
				}
				columns = append(columns, column)
			}
			return columns, nil
		},
		func() []catalog.Column {
			return []catalog.Column{}
		},
	)
}

func (i *Inspector) column(
	key catalog.ObjectKey, row dictionary.ColumnRow,
) (catalog.Column, error) {

	name := naming.Normalize(row.ColumnName)
	nativeType := typemapper.FromDictionary(row.Type)
	portableType, warning := typemapper.ToPortable(nativeType)
	if warning != nil {
		warning.Object = key
		warning.Column = name
		i.warningHandler(warning)
	}

	column := catalog.Column{
		Name:       name,
		Nullable:   row.Nullable,
		Type:       portableType,
		NativeType: nativeType,
		Default:    row.DataDefault,
		Comment:    row.Comment,
	}

	switch {
	case row.IdentityOptions != nil:
		identity, err := parseIdentity(*row.IdentityOptions, row.DefaultOnNull)
		if err != nil {
			return catalog.Column{}, err
		}
		column.Identity = &identity
		column.Default = nil

	case row.Virtual && row.DataDefault != nil:
		column.Computed = &catalog.Computed{
			SQLText: *row.DataDefault,
		}
		column.Default = nil
	}
	return column, nil
}
