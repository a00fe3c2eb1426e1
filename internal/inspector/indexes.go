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
	"github.com/noctarius/catalog-reflector/internal/aggregator"
	"github.com/noctarius/catalog-reflector/internal/dictionary"
	"github.com/noctarius/catalog-reflector/internal/naming"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"strings"
)

const indexTypeBitmap = "BITMAP"

func (i *Inspector) GetIndexes(
	ctx context.Context, name string, options catalog.Options,
) ([]catalog.Index, error) {

	return single(ctx, name, options, i.GetMultiIndexes)
}

// GetMultiIndexes reflects the indexes of the requested objects. The
// index backing the primary key is not reported, neither are
// expression columns.
func (i *Inspector) GetMultiIndexes(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey][]catalog.Index, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	return collect(ctx, targets,
		func(ctx context.Context, t *target) ([]dictionary.IndexRow, error) {
			return i.dictionary.ReadIndexes(ctx, t.scope.Owner, t.scope.DBLink, t.names())
		},
		func(row dictionary.IndexRow) string {
			return row.TableName
		},
		func(_ *target, _ catalog.ObjectKey, rows []dictionary.IndexRow) ([]catalog.Index, error) {
			rows = lo.Filter(rows, func(row dictionary.IndexRow, _ int) bool {
				return !row.PrimaryKeyIndex
			})
			names, grouped := aggregator.GroupOrdered(rows, func(row dictionary.IndexRow) string {
				return row.IndexName
			})

			indexes := make([]catalog.Index, 0, len(names))
			for _, name := range names {
				indexes = append(indexes, buildIndex(name, grouped[name]))
			}
			return indexes, nil
		},
		func() []catalog.Index {
			return []catalog.Index{}
		},
	)
}

// buildIndex merges the column rows of one index. Expression columns
// are not reported, an index made of expressions only has no columns.
func buildIndex(
	name string, rows []dictionary.IndexRow,
) catalog.Index {

	aggregator.SortByOrdinal(rows, func(row dictionary.IndexRow) int {
		return row.ColumnPosition
	})

	columns := lo.FilterMap(rows, func(row dictionary.IndexRow, _ int) (string, bool) {
		if row.Expression || row.ColumnName == nil {
			return "", false
		}
		return naming.Normalize(*row.ColumnName), true
	})
	first := rows[0]
	dialectOptions := make(map[string]any)
	if first.Compressed && first.PrefixLength != nil {
		dialectOptions[catalog.OptionCompress] = *first.PrefixLength
	}
	if strings.Contains(strings.ToUpper(first.IndexType), indexTypeBitmap) {
		dialectOptions[catalog.OptionBitmap] = true
	}

	return catalog.Index{
		Name:           naming.Normalize(name),
		ColumnNames:    columns,
		Unique:         first.Unique,
		DialectOptions: dialectOptions,
	}
}
