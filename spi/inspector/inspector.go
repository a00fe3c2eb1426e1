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
)

// Inspector reflects catalog metadata. Single object operations fail
// with a catalog.NoSuchObjectError if the object does not exist after
// synonym resolution. Multi operations return an entry for every
// object matching the requested kind and filter names.
type Inspector interface {
	GetColumns(ctx context.Context, name string, options catalog.Options) ([]catalog.Column, error)
	GetPrimaryKey(ctx context.Context, name string, options catalog.Options) (catalog.PrimaryKey, error)
	GetForeignKeys(ctx context.Context, name string, options catalog.Options) ([]catalog.ForeignKey, error)
	GetUniqueConstraints(
		ctx context.Context, name string, options catalog.Options,
	) ([]catalog.UniqueConstraint, error)
	GetCheckConstraints(
		ctx context.Context, name string, options catalog.Options,
	) ([]catalog.CheckConstraint, error)
	GetIndexes(ctx context.Context, name string, options catalog.Options) ([]catalog.Index, error)
	GetTableComment(ctx context.Context, name string, options catalog.Options) (catalog.TableComment, error)
	GetTableOptions(ctx context.Context, name string, options catalog.Options) (catalog.TableOptions, error)
	GetViewDefinition(ctx context.Context, name string, options catalog.Options) (string, error)

	GetMultiColumns(ctx context.Context, options catalog.Options) (map[catalog.ObjectKey][]catalog.Column, error)
	GetMultiPrimaryKey(ctx context.Context, options catalog.Options) (map[catalog.ObjectKey]catalog.PrimaryKey, error)
	GetMultiForeignKeys(
		ctx context.Context, options catalog.Options,
	) (map[catalog.ObjectKey][]catalog.ForeignKey, error)
	GetMultiUniqueConstraints(
		ctx context.Context, options catalog.Options,
	) (map[catalog.ObjectKey][]catalog.UniqueConstraint, error)
	GetMultiCheckConstraints(
		ctx context.Context, options catalog.Options,
	) (map[catalog.ObjectKey][]catalog.CheckConstraint, error)
	GetMultiIndexes(ctx context.Context, options catalog.Options) (map[catalog.ObjectKey][]catalog.Index, error)
	GetMultiTableComment(
		ctx context.Context, options catalog.Options,
	) (map[catalog.ObjectKey]catalog.TableComment, error)
	GetMultiTableOptions(
		ctx context.Context, options catalog.Options,
	) (map[catalog.ObjectKey]catalog.TableOptions, error)

	GetTableNames(ctx context.Context, options catalog.Options) ([]string, error)
	GetTempTableNames(ctx context.Context, options catalog.Options) ([]string, error)
	GetViewNames(ctx context.Context, options catalog.Options) ([]string, error)
	GetMaterializedViewNames(ctx context.Context, options catalog.Options) ([]string, error)
	GetSchemaNames(ctx context.Context, options catalog.Options) ([]string, error)
	GetSequenceNames(ctx context.Context, options catalog.Options) ([]string, error)
	HasTable(ctx context.Context, name string, options catalog.Options) (bool, error)

	// Resolve returns the object name refers to in the requested
	// scope, following synonyms if requested. The result carries
	// the kind of the object, a missing target is reported as
	// NoSuchObjectError.
	Resolve(ctx context.Context, name string, options catalog.Options) (catalog.ObjectRef, error)
	// GetSynonyms returns the synonyms of the requested schema
	// together with their final targets
	GetSynonyms(ctx context.Context, options catalog.Options) ([]catalog.SynonymLink, error)
}
