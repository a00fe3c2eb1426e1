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
	"github.com/noctarius/catalog-reflector/internal/scope"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"regexp"
)

const (
	constraintPrimaryKey = "P"
	constraintForeignKey = "R"
	constraintUnique     = "U"
	constraintCheck      = "C"

	deleteRuleNoAction = "NO ACTION"
)

// systemNotNullCheck matches the check constraints Oracle generates
// for NOT NULL columns
var systemNotNullCheck = regexp.MustCompile(`^"[^"]+" IS NOT NULL$`)

func (i *Inspector) GetPrimaryKey(
	ctx context.Context, name string, options catalog.Options,
) (catalog.PrimaryKey, error) {

	return single(ctx, name, options, i.GetMultiPrimaryKey)
}

func (i *Inspector) GetMultiPrimaryKey(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey]catalog.PrimaryKey, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	return collect(ctx, targets, i.readConstraints, constraintTableName,
		func(_ *target, _ catalog.ObjectKey, rows []dictionary.ConstraintRow) (catalog.PrimaryKey, error) {
			names, constraints := groupConstraints(rows, constraintPrimaryKey)
			if len(names) == 0 {
				return emptyPrimaryKey(), nil
			}
			return catalog.PrimaryKey{
				Name:               naming.Normalize(names[0]),
				ConstrainedColumns: localColumns(constraints[names[0]]),
			}, nil
		},
		emptyPrimaryKey,
	)
}

func (i *Inspector) GetForeignKeys(
	ctx context.Context, name string, options catalog.Options,
) ([]catalog.ForeignKey, error) {

	return single(ctx, name, options, i.GetMultiForeignKeys)
}

// GetMultiForeignKeys reflects the foreign keys of the requested
// objects. With synonym resolution, referred tables which are the
// target of a synonym in the requested schema are reported by the
// synonym name.
func (i *Inspector) GetMultiForeignKeys(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey][]catalog.ForeignKey, error) {

	requested, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	referring := make(map[catalog.ObjectRef]string)
	return collect(ctx, targets,
		func(ctx context.Context, t *target) ([]dictionary.ConstraintRow, error) {
			rows, err := i.readConstraints(ctx, t)
			if err != nil {
				return nil, err
			}
			if options.ResolveSynonyms {
				referring, err = i.referringSynonyms(ctx, requested, rows)
				if err != nil {
					return nil, err
				}
			}
			return rows, nil
		},
		constraintTableName,
		func(t *target, _ catalog.ObjectKey, rows []dictionary.ConstraintRow) ([]catalog.ForeignKey, error) {
			names, constraints := groupConstraints(rows, constraintForeignKey)
			foreignKeys := make([]catalog.ForeignKey, 0, len(names))
			for _, name := range names {
				columns := constraints[name]
				first := columns[0]
				remoteOwner := lo.FromPtr(first.RemoteOwner)
				remoteTable := lo.FromPtr(first.RemoteTable)

				foreignKey := catalog.ForeignKey{
					Name:               naming.Normalize(name),
					ConstrainedColumns: localColumns(columns),
					ReferredSchema:     t.scope.ReferredSchema(remoteOwner),
					ReferredTable:      naming.Normalize(remoteTable),
					ReferredColumns: lo.Map(columns, func(row dictionary.ConstraintRow, _ int) string {
						return naming.Normalize(lo.FromPtr(row.RemoteColumn))
					}),
					Options: make(map[string]string),
				}

				if synonym, found := referring[catalog.ObjectRef{Owner: remoteOwner, Name: remoteTable}]; found {
					foreignKey.ReferredSchema = requested.Schema
					foreignKey.ReferredTable = naming.Normalize(synonym)
				}

				if deleteRule := lo.FromPtr(first.DeleteRule); deleteRule != "" && deleteRule != deleteRuleNoAction {
					foreignKey.Options[catalog.OptionOnDelete] = deleteRule
				}
				foreignKeys = append(foreignKeys, foreignKey)
			}
			return foreignKeys, nil
		},
		func() []catalog.ForeignKey {
			return []catalog.ForeignKey{}
		},
	)
}

// referringSynonyms looks up the synonyms of the requested schema
// pointing at tables referred by the foreign keys of rows
func (i *Inspector) referringSynonyms(
	ctx context.Context, requested scope.Scope, rows []dictionary.ConstraintRow,
) (map[catalog.ObjectRef]string, error) {

	referred := lo.Uniq(lo.FilterMap(rows, func(row dictionary.ConstraintRow, _ int) (catalog.ObjectRef, bool) {
		if row.ConstraintType != constraintForeignKey || row.RemoteTable == nil {
			return catalog.ObjectRef{}, false
		}
		return catalog.ObjectRef{Owner: lo.FromPtr(row.RemoteOwner), Name: *row.RemoteTable}, true
	}))
	return i.resolver.FindReferring(ctx, requested.Owner, requested.DBLink, referred)
}

func (i *Inspector) GetUniqueConstraints(
	ctx context.Context, name string, options catalog.Options,
) ([]catalog.UniqueConstraint, error) {

	return single(ctx, name, options, i.GetMultiUniqueConstraints)
}

func (i *Inspector) GetMultiUniqueConstraints(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey][]catalog.UniqueConstraint, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	return collect(ctx, targets, i.readConstraints, constraintTableName,
		func(_ *target, _ catalog.ObjectKey, rows []dictionary.ConstraintRow) ([]catalog.UniqueConstraint, error) {
			names, constraints := groupConstraints(rows, constraintUnique)
			uniques := make([]catalog.UniqueConstraint, 0, len(names))
			for _, name := range names {
				columns := constraints[name]
				uniques = append(uniques, catalog.UniqueConstraint{
					Name:            naming.Normalize(name),
					ColumnNames:     localColumns(columns),
					DuplicatesIndex: naming.Normalize(lo.FromPtr(columns[0].IndexName)),
				})
			}
			return uniques, nil
		},
		func() []catalog.UniqueConstraint {
			return []catalog.UniqueConstraint{}
		},
	)
}

func (i *Inspector) GetCheckConstraints(
	ctx context.Context, name string, options catalog.Options,
) ([]catalog.CheckConstraint, error) {

	return single(ctx, name, options, i.GetMultiCheckConstraints)
}

// GetMultiCheckConstraints reflects check constraints, the NOT NULL
// checks generated by the database are only reported with IncludeAll
func (i *Inspector) GetMultiCheckConstraints(
	ctx context.Context, options catalog.Options,
) (map[catalog.ObjectKey][]catalog.CheckConstraint, error) {

	_, targets, err := i.resolveTargets(ctx, options)
	if err != nil {
		return nil, err
	}

	return collect(ctx, targets, i.readConstraints, constraintTableName,
		func(_ *target, _ catalog.ObjectKey, rows []dictionary.ConstraintRow) ([]catalog.CheckConstraint, error) {
			names, constraints := groupConstraints(rows, constraintCheck)
			checks := make([]catalog.CheckConstraint, 0, len(names))
			for _, name := range names {
				condition := lo.FromPtr(constraints[name][0].SearchCondition)
				if !options.IncludeAll && systemNotNullCheck.MatchString(condition) {
					continue
				}
				checks = append(checks, catalog.CheckConstraint{
					Name:    naming.Normalize(name),
					SQLText: condition,
				})
			}
			return checks, nil
		},
		func() []catalog.CheckConstraint {
			return []catalog.CheckConstraint{}
		},
	)
}

func (i *Inspector) readConstraints(
	ctx context.Context, t *target,
) ([]dictionary.ConstraintRow, error) {

	return i.dictionary.ReadConstraints(ctx, t.scope.Owner, t.scope.DBLink, t.names())
}

func constraintTableName(
	row dictionary.ConstraintRow,
) string {

	return row.TableName
}

// groupConstraints groups the rows of one object by constraint name,
// each constraint's columns ordered by position
func groupConstraints(
	rows []dictionary.ConstraintRow, constraintType string,
) ([]string, map[string][]dictionary.ConstraintRow) {

	rows = lo.Filter(rows, func(row dictionary.ConstraintRow, _ int) bool {
		return row.ConstraintType == constraintType
	})
	names, constraints := aggregator.GroupOrdered(rows, func(row dictionary.ConstraintRow) string {
		return row.ConstraintName
	})
	for _, columns := range constraints {
		aggregator.SortByOrdinal(columns, func(row dictionary.ConstraintRow) int {
			return lo.FromPtr(row.Position)
		})
	}
	return names, constraints
}

func localColumns(
	rows []dictionary.ConstraintRow,
) []string {

	return lo.Map(rows, func(row dictionary.ConstraintRow, _ int) string {
		return naming.Normalize(lo.FromPtr(row.LocalColumn))
	})
}

func emptyPrimaryKey() catalog.PrimaryKey {
	return catalog.PrimaryKey{ConstrainedColumns: []string{}}
}
