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
	"github.com/go-errors/errors"
	"strings"
)

// ObjectKind is a set of catalog object kinds. A classified
// catalog object always carries exactly one of the concrete
// kinds, requests may combine them.
type ObjectKind uint8

const (
	Table ObjectKind = 1 << iota
	View
	MaterializedView
	TempTable
)

const (
	AnyView = View | MaterializedView
	Any     = Table | View | MaterializedView | TempTable
)

var concreteKinds = []ObjectKind{Table, View, MaterializedView, TempTable}

var kindNames = map[ObjectKind]string{
	Table:            "TABLE",
	View:             "VIEW",
	MaterializedView: "MATERIALIZED_VIEW",
	TempTable:        "TEMP_TABLE",
	AnyView:          "ANY_VIEW",
	Any:              "ANY",
}

// Contains returns true if all kinds of other are part of
// this kind set
func (k ObjectKind) Contains(
	other ObjectKind,
) bool {

	return other != 0 && k&other == other
}

// Concrete returns true if the kind is exactly one of the
// concrete object kinds
func (k ObjectKind) Concrete() bool {
	for _, kind := range concreteKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Kinds returns the concrete kinds contained in the set
func (k ObjectKind) Kinds() []ObjectKind {
	kinds := make([]ObjectKind, 0, len(concreteKinds))
	for _, kind := range concreteKinds {
		if k.Contains(kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (k ObjectKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	names := make([]string, 0)
	for _, kind := range k.Kinds() {
		names = append(names, kindNames[kind])
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

func (k ObjectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseObjectKind parses the names produced by String, including
// the composite names ANY_VIEW and ANY
func ParseObjectKind(
	name string,
) (ObjectKind, error) {

	kind := ObjectKind(0)
	for _, part := range strings.Split(name, "|") {
		normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(part)), " ", "_")
		found := false
		for k, n := range kindNames {
			if n == normalized {
				kind |= k
				found = true
				break
			}
		}
		if !found {
			return 0, errors.Errorf("unknown object kind '%s'", part)
		}
	}
	return kind, nil
}
