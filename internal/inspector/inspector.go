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
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/internal/aggregator"
	"github.com/noctarius/catalog-reflector/internal/classifier"
	"github.com/noctarius/catalog-reflector/internal/dictionary"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/noctarius/catalog-reflector/internal/naming"
	"github.com/noctarius/catalog-reflector/internal/scope"
	"github.com/noctarius/catalog-reflector/internal/synonyms"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	spiconfig "github.com/noctarius/catalog-reflector/spi/config"
	spidictionary "github.com/noctarius/catalog-reflector/spi/dictionary"
	"github.com/noctarius/catalog-reflector/spi/inspector"
	"github.com/samber/lo"
	"strings"
)

var defaultExcludeTablespaces = []string{"SYSTEM", "SYSAUX"}

// Settings configure an Inspector for its whole lifetime, per call
// options are passed as catalog.Options
type Settings struct {
	// ExcludeTablespaces hides tables stored in the named tablespaces
	// from GetTableNames, nil means SYSTEM and SYSAUX
	ExcludeTablespaces []string
	MaxSynonymHops     int
	FilterBatchSize    int
	// WarningHandler receives unsupported type warnings, by default
	// they are logged
	WarningHandler catalog.WarningHandler
	Observer       spidictionary.QueryObserver
}

// SettingsFromConfig reads the reflection section of the configuration
func SettingsFromConfig(
	config *spiconfig.Config,
) Settings {

	return Settings{
		ExcludeTablespaces: spiconfig.GetOrDefault(
			config, spiconfig.PropertyReflectionExcludeTablespaces, defaultExcludeTablespaces,
		),
		MaxSynonymHops: spiconfig.GetOrDefault(
			config, spiconfig.PropertyReflectionMaxSynonymHops, synonyms.DefaultMaxSynonymHops,
		),
		FilterBatchSize: spiconfig.GetOrDefault(
			config, spiconfig.PropertyReflectionFilterBatchSize, dictionary.DefaultFilterBatchSize,
		),
	}
}

// Inspector reflects the catalog of one dictionary session. It holds
// no state between calls, every call re-reads the dictionary.
type Inspector struct {
	logger             *logging.Logger
	dictionary         *dictionary.Dictionary
	resolver           *synonyms.Resolver
	excludeTablespaces map[string]bool
	warningHandler     catalog.WarningHandler
}

var _ inspector.Inspector = (*Inspector)(nil)

func NewInspector(
	session spidictionary.Session, settings Settings,
) (*Inspector, error) {

	logger, err := logging.NewLogger("Inspector")
	if err != nil {
		return nil, err
	}

	d, err := dictionary.NewDictionary(session, settings.Observer, settings.FilterBatchSize)
	if err != nil {
		return nil, err
	}

	resolver, err := synonyms.NewResolver(d, settings.MaxSynonymHops)
	if err != nil {
		return nil, err
	}

	excludeTablespaces := settings.ExcludeTablespaces
	if excludeTablespaces == nil {
		excludeTablespaces = defaultExcludeTablespaces
	}

	i := &Inspector{
		logger:     logger,
		dictionary: d,
		resolver:   resolver,
		excludeTablespaces: lo.SliceToMap(excludeTablespaces, func(tablespace string) (string, bool) {
			return strings.ToUpper(tablespace), true
		}),
		warningHandler: settings.WarningHandler,
	}

	if i.warningHandler == nil {
		i.warningHandler = func(warning *catalog.UnsupportedTypeWarning) {
			i.logger.Warnf("%s", warning.Error())
		}
	}
	return i, nil
}

// Resolve returns the physical object name refers to, after synonym
// resolution if requested, restricted to the requested kinds
func (i *Inspector) Resolve(
	ctx context.Context, name string, options catalog.Options,
) (catalog.ObjectRef, error) {

	ref, objects, err := i.lookupObject(ctx, name, options, options.KindOrDefault(catalog.Any))
	if err != nil {
		return catalog.ObjectRef{}, err
	}
	if len(objects) == 0 {
		return catalog.ObjectRef{}, noSuchObject(name, options)
	}
	ref.Kind = objects[0].Kind
	return ref, nil
}

// GetSynonyms returns the synonyms of the requested schema, restricted
// to the filter names, with their final targets
func (i *Inspector) GetSynonyms(
	ctx context.Context, options catalog.Options,
) ([]catalog.SynonymLink, error) {

	s, err := scope.Resolve(ctx, i.dictionary, options)
	if err != nil {
		return nil, err
	}
	return i.resolver.ResolveAll(ctx, s.Owner, s.DBLink, naming.DenormalizeAll(options.FilterNames))
}

// HasTable returns true if a table or view of the name exists
func (i *Inspector) HasTable(
	ctx context.Context, name string, options catalog.Options,
) (bool, error) {

	_, objects, err := i.lookupObject(ctx, name, options, options.KindOrDefault(catalog.Any))
	if err != nil {
		return false, err
	}
	return len(objects) > 0, nil
}

// lookupObject finds the classified objects named name, after
// synonym resolution if requested
func (i *Inspector) lookupObject(
	ctx context.Context, name string, options catalog.Options, kind catalog.ObjectKind,
) (catalog.ObjectRef, []classifier.Classified, error) {

	ref, err := i.resolveRef(ctx, name, options)
	if err != nil {
		return catalog.ObjectRef{}, nil, err
	}

	rows, err := i.dictionary.ReadObjects(ctx, ref.Owner, ref.DBLink, []string{ref.Name})
	if err != nil {
		return catalog.ObjectRef{}, nil, err
	}
	return ref, classifier.Select(rows, kind), nil
}

func (i *Inspector) resolveRef(
	ctx context.Context, name string, options catalog.Options,
) (catalog.ObjectRef, error) {

	s, err := scope.Resolve(ctx, i.dictionary, options)
	if err != nil {
		return catalog.ObjectRef{}, err
	}
	return i.resolver.Resolve(ctx, s.Ref(naming.Denormalize(name), 0), options.ResolveSynonyms)
}

// target is one group of physical objects a multi call reflects.
// Every object is reported under one or more result keys (more than
// one when several synonyms point at the same object).
type target struct {
	scope   scope.Scope
	objects []classifier.Classified
	keys    map[string][]catalog.ObjectKey
	// filtered is false if the category queries may cover the
	// whole owner instead of the listed objects only
	filtered bool
}

func (t *target) names() []string {
	if !t.filtered {
		return nil
	}
	return lo.Map(t.objects, func(object classifier.Classified, _ int) string {
		return object.Name
	})
}

// resolveTargets lists the objects a multi call reflects. With
// synonym resolution the synonyms of the requested schema are
// followed and their targets listed per owner and database link,
// if no synonym matches the plain objects of the schema are used.
func (i *Inspector) resolveTargets(
	ctx context.Context, options catalog.Options,
) (scope.Scope, []*target, error) {

	s, err := scope.Resolve(ctx, i.dictionary, options)
	if err != nil {
		return scope.Scope{}, nil, err
	}

	filter := naming.DenormalizeAll(options.FilterNames)
	kind := options.KindOrDefault(catalog.Table)

	if options.ResolveSynonyms {
		links, err := i.resolver.ResolveAll(ctx, s.Owner, s.DBLink, filter)
		if err != nil {
			return scope.Scope{}, nil, err
		}
		if len(links) > 0 {
			targets, err := i.synonymTargets(ctx, s, links, kind)
			return s, targets, err
		}
	}

	rows, err := i.dictionary.ReadObjects(ctx, s.Owner, s.DBLink, filter)
	if err != nil {
		return scope.Scope{}, nil, err
	}

	t := &target{
		scope:    s,
		objects:  classifier.Select(rows, kind),
		keys:     make(map[string][]catalog.ObjectKey),
		filtered: len(filter) > 0,
	}
	for _, object := range t.objects {
		t.keys[object.Name] = []catalog.ObjectKey{s.Key(object.Name)}
	}
	return s, []*target{t}, nil
}

func (i *Inspector) synonymTargets(
	ctx context.Context, s scope.Scope, links []catalog.SynonymLink, kind catalog.ObjectKind,
) ([]*target, error) {

	type location struct {
		owner  string
		dbLink string
	}

	locations, grouped := aggregator.GroupOrdered(links, func(link catalog.SynonymLink) location {
		return location{owner: link.To.Owner, dbLink: link.To.DBLink}
	})

	targets := make([]*target, 0, len(locations))
	for _, loc := range locations {
		group := grouped[loc]
		names := lo.Uniq(lo.Map(group, func(link catalog.SynonymLink, _ int) string {
			return link.To.Name
		}))

		rows, err := i.dictionary.ReadObjects(ctx, loc.owner, loc.dbLink, names)
		if err != nil {
			return nil, err
		}

		t := &target{
			scope: scope.Scope{
				Owner:  loc.owner,
				Schema: lo.Ternary(loc.owner == s.Owner, s.Schema, naming.Normalize(loc.owner)),
				DBLink: loc.dbLink,
			},
			objects:  classifier.Select(rows, kind),
			keys:     make(map[string][]catalog.ObjectKey),
			filtered: true,
		}
		for _, link := range group {
			t.keys[link.To.Name] = append(t.keys[link.To.Name], s.Key(link.From.Name))
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func allKeys(
	targets []*target,
) []catalog.ObjectKey {

	keys := make([]catalog.ObjectKey, 0)
	for _, t := range targets {
		for _, object := range t.objects {
			keys = append(keys, t.keys[object.Name]...)
		}
	}
	return keys
}

// collect runs the category query of every target and builds the
// result of each object from its rows. Objects without rows get
// the empty value.
func collect[R any, V any](
	ctx context.Context,
	targets []*target,
	read func(ctx context.Context, t *target) ([]R, error),
	tableName func(row R) string,
	build func(t *target, key catalog.ObjectKey, rows []R) (V, error),
	empty func() V,
) (map[catalog.ObjectKey]V, error) {

	result := make(map[catalog.ObjectKey]V)
	for _, t := range targets {
		if len(t.objects) == 0 {
			continue
		}

		rows, err := read(ctx, t)
		if err != nil {
			return nil, err
		}

		_, grouped := aggregator.GroupOrdered(rows, tableName)
		for _, object := range t.objects {
			objectRows, present := grouped[object.Name]
			if !present {
				continue
			}
			for _, key := range t.keys[object.Name] {
				value, err := build(t, key, objectRows)
				if err != nil {
					return nil, err
				}
				result[key] = value
			}
		}
	}
	return aggregator.Fill(allKeys(targets), result, empty), nil
}

// partition splits the objects of the targets by the dictionary
// source their metadata is stored in
func partition[S comparable](
	targets []*target, source func(kind catalog.ObjectKind) (S, error),
) (map[S][]*target, error) {

	partitions := make(map[S][]*target)
	for _, t := range targets {
		bySource := make(map[S]*target)
		order := make([]S, 0)
		for _, object := range t.objects {
			s, err := source(object.Kind)
			if err != nil {
				return nil, err
			}
			part, present := bySource[s]
			if !present {
				part = &target{
					scope:    t.scope,
					keys:     t.keys,
					filtered: t.filtered,
				}
				bySource[s] = part
				order = append(order, s)
			}
			part.objects = append(part.objects, object)
		}
		for _, s := range order {
			partitions[s] = append(partitions[s], bySource[s])
		}
	}
	return partitions, nil
}

// single runs a multi operation for exactly one object. Without an
// explicit kind every selectable kind is considered.
func single[V any](
	ctx context.Context, name string, options catalog.Options,
	multi func(ctx context.Context, options catalog.Options) (map[catalog.ObjectKey]V, error),
) (V, error) {

	options.FilterNames = []string{name}
	options.Kind = options.KindOrDefault(catalog.Any)

	result, err := multi(ctx, options)
	if err != nil {
		return *new(V), err
	}

	values := lo.Values(result)
	if len(values) == 0 {
		return *new(V), noSuchObject(name, options)
	}
	return values[0], nil
}

func noSuchObject(
	name string, options catalog.Options,
) error {

	return errors.Wrap(&catalog.NoSuchObjectError{
		Ref: catalog.ObjectRef{
			Owner:  options.Schema,
			Name:   name,
			DBLink: options.DBLink,
			Kind:   options.Kind,
		},
	}, 0)
}
