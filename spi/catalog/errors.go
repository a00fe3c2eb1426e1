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

package catalog

import (
	"fmt"
	"strings"
)

// NoSuchObjectError is returned when the requested object does
// not exist, or is not visible, after synonym resolution
type NoSuchObjectError struct {
	Ref ObjectRef
}

func (e *NoSuchObjectError) Error() string {
	return fmt.Sprintf("no such table: %s", e.Ref)
}

// AmbiguousSynonymError is returned when one synonym name leads
// to more than one target
type AmbiguousSynonymError struct {
	Synonym    ObjectRef
	Candidates []ObjectRef
}

func (e *AmbiguousSynonymError) Error() string {
	candidates := make([]string, 0, len(e.Candidates))
	for _, candidate := range e.Candidates {
		candidates = append(candidates, candidate.String())
	}
	return fmt.Sprintf(
		"synonym %s is ambiguous, candidates: %s (specify the owner or database link)",
		e.Synonym, strings.Join(candidates, ", "),
	)
}

// SynonymCycleError is returned when a synonym chain revisits an
// object or exceeds the configured number of hops
type SynonymCycleError struct {
	Chain []ObjectRef
	Bound int
}

func (e *SynonymCycleError) Error() string {
	chain := make([]string, 0, len(e.Chain))
	for _, ref := range e.Chain {
		chain = append(chain, ref.String())
	}
	return fmt.Sprintf(
		"synonym chain does not terminate within %d hops: %s", e.Bound, strings.Join(chain, " -> "),
	)
}

// MetadataMismatchError is returned for structurally impossible
// requests, such as a view definition of a base table
type MetadataMismatchError struct {
	Ref    ObjectRef
	Reason string
}

func (e *MetadataMismatchError) Error() string {
	if e.Ref.Name == "" {
		return fmt.Sprintf("metadata mismatch: %s", e.Reason)
	}
	return fmt.Sprintf("metadata mismatch for %s: %s", e.Ref, e.Reason)
}

// UnsupportedTypeWarning reports a column whose native type has no
// portable equivalent. The column is reflected with the UNKNOWN
// category, the reflection itself does not fail.
type UnsupportedTypeWarning struct {
	Object     ObjectKey
	Column     string
	NativeType string
}

func (w *UnsupportedTypeWarning) Error() string {
	if w.Column == "" {
		return fmt.Sprintf("did not recognize type '%s'", w.NativeType)
	}
	return fmt.Sprintf("did not recognize type '%s' of column '%s' (%s)", w.NativeType, w.Column, w.Object)
}

// WarningHandler receives warnings raised during reflection
type WarningHandler func(warning *UnsupportedTypeWarning)
