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

package synonyms

import (
	"context"
	"fmt"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/internal/dictionary"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/noctarius/catalog-reflector/internal/scope"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"strings"
)

const DefaultMaxSynonymHops = 3

// SynonymSource reads synonym definitions from the data dictionary
type SynonymSource interface {
	scope.OwnerSource
	ReadSynonyms(ctx context.Context, owner, dbLink string, names []string) ([]dictionary.SynonymRow, error)
	ReadSynonymsReferring(
		ctx context.Context, owner, dbLink string, targetNames []string,
	) ([]dictionary.SynonymRow, error)
}

// Resolver follows synonym chains to their final target. Chains are
// bounded by the maximum number of hops, revisiting an object is
// reported as a cycle.
type Resolver struct {
	logger  *logging.Logger
	source  SynonymSource
	maxHops int
}

func NewResolver(
	source SynonymSource, maxHops int,
) (*Resolver, error) {

	logger, err := logging.NewLogger("SynonymResolver")
	if err != nil {
		return nil, err
	}

	if maxHops <= 0 {
		maxHops = DefaultMaxSynonymHops
	}

	return &Resolver{
		logger:  logger,
		source:  source,
		maxHops: maxHops,
	}, nil
}

// Resolve returns the final target of ref. Without follow the
// reference is returned unchanged.
func (r *Resolver) Resolve(
	ctx context.Context, ref catalog.ObjectRef, follow bool,
) (catalog.ObjectRef, error) {

	if !follow {
		return ref, nil
	}

	if ref.Owner == "" {
		s, err := scope.Resolve(ctx, r.source, catalog.Options{DBLink: ref.DBLink})
		if err != nil {
			return catalog.ObjectRef{}, err
		}
		ref.Owner = s.Owner
		ref.DBLink = s.DBLink
	}

	chain := newChain(ref)
	current := ref
	for hop := 0; ; hop++ {
		rows, err := r.source.ReadSynonyms(ctx, current.Owner, current.DBLink, []string{current.Name})
		if err != nil {
			return catalog.ObjectRef{}, err
		}

		rows = lo.Filter(rows, func(row dictionary.SynonymRow, _ int) bool {
			return row.SynonymName == current.Name
		})
		if len(rows) == 0 {
			return current, nil
		}

		next, err := r.follow(ctx, current, rows)
		if err != nil {
			return catalog.ObjectRef{}, err
		}
		if err := chain.add(next, hop+1, r.maxHops); err != nil {
			return catalog.ObjectRef{}, err
		}
		r.logger.Debugf("Synonym %s resolves to %s", current, next)
		current = next
	}
}

// ResolveAll resolves the synonyms of owner (restricted to names if
// not empty) to their final targets. Every hop level runs one
// synonym query per distinct owner and database link.
func (r *Resolver) ResolveAll(
	ctx context.Context, owner, dbLink string, names []string,
) ([]catalog.SynonymLink, error) {

	rows, err := r.source.ReadSynonyms(ctx, owner, dbLink, names)
	if err != nil {
		return nil, err
	}

	type pending struct {
		from    catalog.ObjectRef
		current catalog.ObjectRef
		chain   *chain
	}

	grouped := lo.GroupBy(rows, func(row dictionary.SynonymRow) string {
		return row.SynonymName
	})
	order := lo.Uniq(lo.Map(rows, func(row dictionary.SynonymRow, _ int) string {
		return row.SynonymName
	}))

	open := make([]*pending, 0, len(order))
	for _, name := range order {
		from := catalog.ObjectRef{Owner: owner, Name: name, DBLink: dbLink}
		next, err := r.follow(ctx, from, grouped[name])
		if err != nil {
			return nil, err
		}
		c := newChain(from)
		if err := c.add(next, 1, r.maxHops); err != nil {
			return nil, err
		}
		open = append(open, &pending{from: from, current: next, chain: c})
	}

	resolved := make(map[catalog.ObjectRef]catalog.ObjectRef, len(open))
	for hop := 2; len(open) > 0; hop++ {
		type scopeKey struct {
			owner  string
			dbLink string
		}

		byScope := lo.GroupBy(open, func(p *pending) scopeKey {
			return scopeKey{owner: p.current.Owner, dbLink: p.current.DBLink}
		})

		stillOpen := make([]*pending, 0)
		for key, group := range byScope {
			targetNames := lo.Uniq(lo.Map(group, func(p *pending, _ int) string {
				return p.current.Name
			}))

			hopRows, err := r.source.ReadSynonyms(ctx, key.owner, key.dbLink, targetNames)
			if err != nil {
				return nil, err
			}
			hopGrouped := lo.GroupBy(hopRows, func(row dictionary.SynonymRow) string {
				return row.SynonymName
			})

			for _, p := range group {
				synonymRows, found := hopGrouped[p.current.Name]
				if !found {
					resolved[p.from] = p.current
					continue
				}
				next, err := r.follow(ctx, p.current, synonymRows)
				if err != nil {
					return nil, err
				}
				if err := p.chain.add(next, hop, r.maxHops); err != nil {
					return nil, err
				}
				p.current = next
				stillOpen = append(stillOpen, p)
			}
		}
		open = stillOpen
	}

	links := make([]catalog.SynonymLink, 0, len(order))
	for _, name := range order {
		from := catalog.ObjectRef{Owner: owner, Name: name, DBLink: dbLink}
		links = append(links, catalog.SynonymLink{From: from, To: resolved[from]})
	}
	return links, nil
}

// FindReferring returns, per referred object (keyed by owner and
// name), the name of the first synonym in owner pointing at it
func (r *Resolver) FindReferring(
	ctx context.Context, owner, dbLink string, targets []catalog.ObjectRef,
) (map[catalog.ObjectRef]string, error) {

	referring := make(map[catalog.ObjectRef]string)
	if len(targets) == 0 {
		return referring, nil
	}

	wanted := lo.SliceToMap(targets, func(target catalog.ObjectRef) (catalog.ObjectRef, bool) {
		return catalog.ObjectRef{Owner: target.Owner, Name: target.Name}, true
	})
	targetNames := lo.Uniq(lo.Map(targets, func(target catalog.ObjectRef, _ int) string {
		return target.Name
	}))

	rows, err := r.source.ReadSynonymsReferring(ctx, owner, dbLink, targetNames)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.DBLink != nil && *row.DBLink != "" {
			continue
		}
		key := catalog.ObjectRef{Owner: lo.Ternary(row.TableOwner == "", owner, row.TableOwner), Name: row.TableName}
		if !wanted[key] {
			continue
		}
		if _, present := referring[key]; !present {
			referring[key] = row.SynonymName
		}
	}
	return referring, nil
}

// follow takes one step from current through its synonym rows
func (r *Resolver) follow(
	ctx context.Context, current catalog.ObjectRef, rows []dictionary.SynonymRow,
) (catalog.ObjectRef, error) {

	candidates := make([]catalog.ObjectRef, 0, len(rows))
	for _, row := range rows {
		candidate, err := r.target(ctx, current, row)
		if err != nil {
			return catalog.ObjectRef{}, err
		}
		if !lo.Contains(candidates, candidate) {
			candidates = append(candidates, candidate)
		}
	}

	if len(candidates) > 1 {
		return catalog.ObjectRef{}, errors.Wrap(&catalog.AmbiguousSynonymError{
			Synonym:    current,
			Candidates: candidates,
		}, 0)
	}
	return candidates[0], nil
}

// target computes the object a synonym row points at. Database links
// compound: a link of the definition is taken when the current
// reference has none, a second different link cannot be expressed.
func (r *Resolver) target(
	ctx context.Context, current catalog.ObjectRef, row dictionary.SynonymRow,
) (catalog.ObjectRef, error) {

	dbLink := current.DBLink
	if row.DBLink != nil && *row.DBLink != "" {
		rowLink := strings.ToUpper(*row.DBLink)
		switch {
		case dbLink == "":
			dbLink = rowLink
		case !sameLink(dbLink, rowLink):
			return catalog.ObjectRef{}, errors.Wrap(&catalog.MetadataMismatchError{
				Ref:    current,
				Reason: fmt.Sprintf("synonym points into database link %s from database link %s", rowLink, dbLink),
			}, 0)
		}
	}

	owner := row.TableOwner
	if owner == "" {
		if dbLink != current.DBLink {
			s, err := scope.Resolve(ctx, r.source, catalog.Options{DBLink: dbLink})
			if err != nil {
				return catalog.ObjectRef{}, err
			}
			owner = s.Owner
		} else {
			owner = current.Owner
		}
	}

	return catalog.ObjectRef{
		Owner:  owner,
		Name:   row.TableName,
		DBLink: dbLink,
		Kind:   current.Kind,
	}, nil
}

// sameLink compares database link names, a name without domain
// matches the same name with domain
func sameLink(
	a, b string,
) bool {

	a, b = strings.ToUpper(a), strings.ToUpper(b)
	return a == b || strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}

type chain struct {
	refs    []catalog.ObjectRef
	visited map[catalog.ObjectRef]bool
}

func newChain(
	start catalog.ObjectRef,
) *chain {

	return &chain{
		refs:    []catalog.ObjectRef{start},
		visited: map[catalog.ObjectRef]bool{start.Key(): true},
	}
}

// add appends the target of hop to the chain, failing if the target
// was visited before or the hop exceeds the bound
func (c *chain) add(
	next catalog.ObjectRef, hop, maxHops int,
) error {

	c.refs = append(c.refs, next)
	if c.visited[next.Key()] || hop > maxHops {
		return errors.Wrap(&catalog.SynonymCycleError{
			Chain: append([]catalog.ObjectRef{}, c.refs...),
			Bound: maxHops,
		}, 0)
	}
	c.visited[next.Key()] = true
	return nil
}
