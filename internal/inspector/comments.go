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
	"github.com/noctarius/catalog-reflector/internal/dictionary"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
)

func (i *Inspector) GetTableComment(
	ctx context.Context, name string, options catalog.Options,
) (catalog.TableComment, error) {

	return single(ctx, name, options, i.GetMultiTableComment)
}

// GetMultiTableComment reflects the comments of the requested objects.
// Materialized view comments are read from their own dictionary view.
func (i *Inspector) GetMultiTableComment(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey]catalog.TableComment, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	partitions, err := partition(targets, classifier.CommentSourceOf)
	if err != nil {
		return nil, err
	}

	readers := map[classifier.CommentSource]func(
		ctx context.Context, owner, dbLink string, names []string,
	) ([]dictionary.CommentRow, error){
		classifier.TableComments: i.dictionary.ReadTableComments,
		classifier.MViewComments: i.dictionary.ReadMViewComments,
	}

	result := make(map[catalog.ObjectKey]catalog.TableComment)
	for _, source := range []classifier.CommentSource{classifier.TableComments, classifier.MViewComments} {
		read := readers[source]
		comments, err := collect(ctx, partitions[source],
			func(ctx context.Context, t *target) ([]dictionary.CommentRow, error) {
				return read(ctx, t.scope.Owner, t.scope.DBLink, t.names())
			},
			func(row dictionary.CommentRow) string {
				return row.TableName
			},
			func(_ *target, _ catalog.ObjectKey, rows []dictionary.CommentRow) (catalog.TableComment, error) {
				return catalog.TableComment{Text: rows[0].Comment}, nil
			},
			func() catalog.TableComment {
				return catalog.TableComment{}
			},
		)
		if err != nil {
			return nil, err
		}
		result = lo.Assign(result, comments)
	}
	return result, nil
}

func (i *Inspector) GetTableOptions(
	ctx context.Context, name string, options catalog.Options,
) (catalog.TableOptions, error) {

	return single(ctx, name, options, i.GetMultiTableOptions)
}

// GetMultiTableOptions reflects the storage options of the requested
// objects, objects without storage report empty options
func (i *Inspector) GetMultiTableOptions(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey]catalog.TableOptions, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	return collect(ctx, targets,
		func(ctx context.Context, t *target) ([]dictionary.TableOptionsRow, error) {
			return i.dictionary.ReadTableOptions(ctx, t.scope.Owner, t.scope.DBLink, t.names())
		},
		func(row dictionary.TableOptionsRow) string {
			return row.TableName
		},
		func(_ *target, _ catalog.ObjectKey, rows []dictionary.TableOptionsRow) (catalog.TableOptions, error) {
			tableOptions := make(catalog.TableOptions)
			row := rows[0]
			if lo.FromPtr(row.Compression) == "ENABLED" {
				if compressFor := lo.FromPtr(row.CompressFor); compressFor != "" {
					tableOptions[catalog.OptionCompress] = compressFor
				} else {
					tableOptions[catalog.OptionCompress] = true
				}
			}
			return tableOptions, nil
		},
		func() catalog.TableOptions {
			return make(catalog.TableOptions)
		},
	)
}

// GetViewDefinition returns the defining query of a view or
// materialized view
func (i *Inspector) GetViewDefinition(
	ctx context.Context, name string, options catalog.Options,
) (string, error) {

	ref, views, err := i.lookupObject(ctx, name, options, catalog.AnyView)
	if err != nil {
		return "", err
	}
	if len(views) == 0 {
		return "", noSuchObject(name, options)
	}

	source, err := classifier.DefinitionSourceOf(views[0].Kind)
	if err != nil {
		return "", err
	}

	read := i.dictionary.ReadViewDefinition
	if source == classifier.MViewDefinitions {
		read = i.dictionary.ReadMViewDefinition
	}

	definition, found, err := read(ctx, ref.Owner, ref.DBLink, ref.Name)
	if err != nil {
		return "", err
	}
	if !found {
		return "", noSuchObject(name, options)
	}
	return lo.FromPtr(definition), nil
}
