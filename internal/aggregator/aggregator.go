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

package aggregator

import (
	"sort"
)

// GroupOrdered groups rows by key. The returned keys keep the order
// in which each group first appeared, rows keep their order inside
// the group.
func GroupOrdered[R any, K comparable](
	rows []R, key func(row R) K,
) ([]K, map[K][]R) {

	keys := make([]K, 0)
	groups := make(map[K][]R)
	for _, row := range rows {
		k := key(row)
		if _, present := groups[k]; !present {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], row)
	}
	return keys, groups
}

// SortByOrdinal sorts the rows of one construct by their catalog
// ordinal (such as the column position), keeping the order of rows
// with equal ordinals
func SortByOrdinal[R any](
	rows []R, ordinal func(row R) int,
) {

	sort.SliceStable(rows, func(i, j int) bool {
		return ordinal(rows[i]) < ordinal(rows[j])
	})
}

// Fill makes sure every key has an entry, keys without a value get
// a fresh empty value
func Fill[K comparable, V any](
	keys []K, values map[K]V, empty func() V,
) map[K]V {

	if values == nil {
		values = make(map[K]V, len(keys))
	}
	for _, key := range keys {
		if _, present := values[key]; !present {
			values[key] = empty()
		}
	}
	return values
}
