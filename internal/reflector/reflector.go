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

package reflector

import (
	"context"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/internal/filtering"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/noctarius/catalog-reflector/internal/naming"
	"github.com/noctarius/catalog-reflector/internal/snapshot"
	"github.com/noctarius/catalog-reflector/internal/stats"
	"github.com/noctarius/catalog-reflector/internal/typemapper"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/noctarius/catalog-reflector/spi/config"
	"github.com/noctarius/catalog-reflector/spi/datatypes"
	"github.com/noctarius/catalog-reflector/spi/dictionary"
	"github.com/noctarius/catalog-reflector/spi/inspector"
	"github.com/samber/lo"
	"io"
	"sort"
)

// Entry is a single object of a name listing
type Entry struct {
	Schema string             `json:"schema,omitempty"`
	Name   string             `json:"name"`
	Kind   catalog.ObjectKind `json:"kind"`
}

// Description is the complete reflected metadata of one object
type Description struct {
	Kind              catalog.ObjectKind         `json:"kind,omitempty"`
	Columns           []catalog.Column           `json:"columns"`
	PrimaryKey        catalog.PrimaryKey         `json:"primary_key"`
	ForeignKeys       []catalog.ForeignKey       `json:"foreign_keys"`
	UniqueConstraints []catalog.UniqueConstraint `json:"unique_constraints"`
	CheckConstraints  []catalog.CheckConstraint  `json:"check_constraints"`
	Indexes           []catalog.Index            `json:"indexes"`
	Comment           catalog.TableComment       `json:"comment"`
	Options           catalog.TableOptions       `json:"options"`
	ViewDefinition    *string                    `json:"view_definition,omitempty"`
}

// TypeMapping shows how a native type declaration maps to its
// portable type and back
type TypeMapping struct {
	Native   string `json:"native"`
	Portable string `json:"portable"`
	Reverse  string `json:"reverse"`
	Warning  string `json:"warning,omitempty"`
}

// Reflector runs the reflection requests of the command line
// against one dictionary session
type Reflector struct {
	logger    *logging.Logger
	session   dictionary.Session
	inspector inspector.Inspector
	filter    filtering.ObjectFilter
	stats     *stats.Service
	defaults  catalog.Options
}

func NewReflector(
	c *config.Config, session dictionary.Session, inspector inspector.Inspector,
	filter filtering.ObjectFilter, statsService *stats.Service,
) (*Reflector, error) {

	logger, err := logging.NewLogger("Reflector")
	if err != nil {
		return nil, err
	}

	return &Reflector{
		logger:    logger,
		session:   session,
		inspector: inspector,
		filter:    filter,
		stats:     statsService,
		defaults:  OptionsFromConfig(c),
	}, nil
}

// OptionsFromConfig reads the request defaults of the reflection
// section of the configuration
func OptionsFromConfig(
	c *config.Config,
) catalog.Options {

	return catalog.Options{
		Schema:             config.GetOrDefault(c, config.PropertyReflectionSchema, ""),
		DBLink:             config.GetOrDefault(c, config.PropertyReflectionDBLink, ""),
		ResolveSynonyms:    config.GetOrDefault(c, config.PropertyReflectionResolveSynonyms, false),
		SchemaTranslateMap: c.Reflection.SchemaTranslateMap,
	}
}

// Defaults returns the options requests start from
func (r *Reflector) Defaults() catalog.Options {
	return r.defaults
}

// Names lists the objects of the requested kinds which pass the
// object filter, ordered by kind and name
func (r *Reflector) Names(
	ctx context.Context, options catalog.Options,
) ([]Entry, error) {

	schema := naming.Normalize(options.Schema)
	entries := make([]Entry, 0)
	for _, kind := range options.KindOrDefault(catalog.Table).Kinds() {
		names, err := r.listNames(ctx, kind, options)
		if err != nil {
			return nil, err
		}
		sort.Strings(names)

		for _, name := range names {
			accepted, err := r.filter.Accept(catalog.ObjectKey{Schema: schema, Name: name}, kind)
			if err != nil {
				return nil, err
			}
			if accepted {
				entries = append(entries, Entry{Schema: schema, Name: name, Kind: kind})
			}
		}
	}
	return entries, nil
}

func (r *Reflector) listNames(
	ctx context.Context, kind catalog.ObjectKind, options catalog.Options,
) ([]string, error) {

	switch kind {
	case catalog.Table:
		return r.inspector.GetTableNames(ctx, options)
	case catalog.View:
		return r.inspector.GetViewNames(ctx, options)
	case catalog.MaterializedView:
		return r.inspector.GetMaterializedViewNames(ctx, options)
	case catalog.TempTable:
		return r.inspector.GetTempTableNames(ctx, options)
	}
	return nil, errors.Errorf("unsupported object kind %s", kind)
}

// Describe reflects a single object, views carry their definition
func (r *Reflector) Describe(
	ctx context.Context, name string, options catalog.Options,
) (Description, error) {

	ref, err := r.inspector.Resolve(ctx, name, options)
	if err != nil {
		return Description{}, err
	}

	description := Description{Kind: ref.Kind}
	if description.Columns, err = r.inspector.GetColumns(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.PrimaryKey, err = r.inspector.GetPrimaryKey(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.ForeignKeys, err = r.inspector.GetForeignKeys(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.UniqueConstraints, err = r.inspector.GetUniqueConstraints(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.CheckConstraints, err = r.inspector.GetCheckConstraints(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.Indexes, err = r.inspector.GetIndexes(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.Comment, err = r.inspector.GetTableComment(ctx, name, options); err != nil {
		return Description{}, err
	}
	if description.Options, err = r.inspector.GetTableOptions(ctx, name, options); err != nil {
		return Description{}, err
	}

	definition, err := r.inspector.GetViewDefinition(ctx, name, options)
	if err != nil {
		var noSuchObject *catalog.NoSuchObjectError
		if !errors.As(err, &noSuchObject) {
			return Description{}, err
		}
	} else {
		description.ViewDefinition = &definition
	}
	return description, nil
}

// Reflect reflects all objects of the requested kinds with the
// multi operations of the inspector, one round per concrete kind.
// Objects rejected by the object filter are dropped.
func (r *Reflector) Reflect(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey]Description, error) {

	result := make(map[catalog.ObjectKey]Description)
	for _, kind := range options.KindOrDefault(catalog.Table).Kinds() {
		kindOptions := options
		kindOptions.Kind = kind

		descriptions, err := r.reflectKind(ctx, kindOptions)
		if err != nil {
			return nil, err
		}

		for key, description := range descriptions {
			accepted, err := r.filter.Accept(key, kind)
			if err != nil {
				return nil, err
			}
			if accepted {
				result[key] = description
			}
		}
		r.logger.Debugf("Reflected %d objects of kind %s", len(descriptions), kind)
	}
	return result, nil
}

func (r *Reflector) reflectKind(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey]Description, error) {

	columns, err := r.inspector.GetMultiColumns(ctx, options)
	if err != nil {
		return nil, err
	}
	primaryKeys, err := r.inspector.GetMultiPrimaryKey(ctx, options)
	if err != nil {
		return nil, err
	}
	foreignKeys, err := r.inspector.GetMultiForeignKeys(ctx, options)
	if err != nil {
		return nil, err
	}
	uniqueConstraints, err := r.inspector.GetMultiUniqueConstraints(ctx, options)
	if err != nil {
		return nil, err
	}
	checkConstraints, err := r.inspector.GetMultiCheckConstraints(ctx, options)
	if err != nil {
		return nil, err
	}
	indexes, err := r.inspector.GetMultiIndexes(ctx, options)
	if err != nil {
		return nil, err
	}
	comments, err := r.inspector.GetMultiTableComment(ctx, options)
	if err != nil {
		return nil, err
	}
	tableOptions, err := r.inspector.GetMultiTableOptions(ctx, options)
	if err != nil {
		return nil, err
	}

	definitions := make(map[catalog.ObjectKey]*string)
	if catalog.AnyView.Contains(options.Kind) {
		for key := range columns {
			definition, err := r.inspector.GetViewDefinition(ctx, key.Name, options)
			if err != nil {
				return nil, err
			}
			definitions[key] = &definition
		}
	}

	return lo.MapValues(columns, func(objectColumns []catalog.Column, key catalog.ObjectKey) Description {
		return Description{
			Kind:              options.Kind,
			Columns:           objectColumns,
			PrimaryKey:        primaryKeys[key],
			ForeignKeys:       foreignKeys[key],
			UniqueConstraints: uniqueConstraints[key],
			CheckConstraints:  checkConstraints[key],
			Indexes:           indexes[key],
			Comment:           comments[key],
			Options:           tableOptions[key],
			ViewDefinition:    definitions[key],
		}
	}), nil
}

// Resolve follows the synonyms of name in the requested schema
func (r *Reflector) Resolve(
	ctx context.Context, name string, options catalog.Options,
) (catalog.ObjectRef, error) {

	options.ResolveSynonyms = true
	return r.inspector.Resolve(ctx, name, options)
}

// Snapshot copies the dictionary of the given owners into a SQLite
// dictionary file
func (r *Reflector) Snapshot(
	ctx context.Context, path string, owners []string,
) error {

	return snapshot.Capture(ctx, r.session, owners, path)
}

// WriteStats writes the collected query metrics, nothing is written
// if stats are disabled
func (r *Reflector) WriteStats(
	writer io.Writer,
) error {

	_, err := r.stats.WriteTo(writer)
	return err
}

// MapType parses a native type declaration, maps it to its portable
// type and back again
func MapType(
	declaration string,
) (TypeMapping, error) {

	native, err := datatypes.ParseNativeType(declaration)
	if err != nil {
		return TypeMapping{}, err
	}

	portable, warning := typemapper.ToPortable(native)
	mapping := TypeMapping{
		Native:   native.String(),
		Portable: portable.String(),
	}
	if warning != nil {
		mapping.Warning = warning.Error()
		return mapping, nil
	}

	reverse, err := typemapper.ToNative(portable, "")
	if err != nil {
		return TypeMapping{}, err
	}
	mapping.Reverse = reverse.String()
	return mapping, nil
}
