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

package classifier

import (
	"fmt"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/samber/lo"
	"strings"
)

const (
	objectTypeTable            = "TABLE"
	objectTypeView             = "VIEW"
	objectTypeMaterializedView = "MATERIALIZED VIEW"
	iotTypeOverflow            = "IOT_OVERFLOW"
	iotTypeMapping             = "IOT_MAPPING"
)

// ObjectRow is one row of the object listing (ALL_OBJECTS joined
// with ALL_TABLES and ALL_MVIEWS)
type ObjectRow struct {
	Name       string
	ObjectType string
	Temporary  bool
	IOTType    *string
	IsMView    bool
	Tablespace *string
}

// Classification is the outcome of classifying a single object row
type Classification uint8

const (
	Unclassified Classification = iota
	Table
	View
	MaterializedView
	TempTable
	// Duplicate is the container table of a materialized view,
	// the materialized view itself is listed separately
	Duplicate
	// System marks index organized table overflow and mapping
	// segments which are never reported
	System
)

func (c Classification) String() string {
	switch c {
	case Table:
		return "TABLE"
	case View:
		return "VIEW"
	case MaterializedView:
		return "MATERIALIZED_VIEW"
	case TempTable:
		return "TEMP_TABLE"
	case Duplicate:
		return "DUPLICATE"
	case System:
		return "SYSTEM"
	}
	return "UNCLASSIFIED"
}

// Kind returns the object kind of the classification. Dropped
// classifications return false.
func (c Classification) Kind() (catalog.ObjectKind, bool) {
	switch c {
	case Table:
		return catalog.Table, true
	case View:
		return catalog.View, true
	case MaterializedView:
		return catalog.MaterializedView, true
	case TempTable:
		return catalog.TempTable, true
	}
	return 0, false
}

// Classify assigns exactly one classification to an object row
func Classify(
	row ObjectRow,
) Classification {

	switch strings.ToUpper(row.ObjectType) {
	case objectTypeMaterializedView:
		return MaterializedView

	case objectTypeView:
		return View

	case objectTypeTable:
		if row.IsMView {
			return Duplicate
		}
		if row.IOTType != nil {
			switch strings.ToUpper(*row.IOTType) {
			case iotTypeOverflow, iotTypeMapping:
				return System
			}
		}
		if row.Temporary {
			return TempTable
		}
		return Table
	}
	return Unclassified
}

// Classified is an object row together with its object kind
type Classified struct {
	ObjectRow
	Kind catalog.ObjectKind
}

// Select classifies all rows and returns the ones whose kind is
// part of the requested kind set, preserving the row order
func Select(
	rows []ObjectRow,
	kind catalog.ObjectKind,
) []Classified {

	return lo.FilterMap(rows, func(row ObjectRow, _ int) (Classified, bool) {
		objectKind, ok := Classify(row).Kind()
		if !ok || !kind.Contains(objectKind) {
			return Classified{}, false
		}
		return Classified{ObjectRow: row, Kind: objectKind}, true
	})
}

// CommentSource names the dictionary view holding the comment of
// an object kind
type CommentSource uint8

const (
	TableComments CommentSource = iota + 1
	MViewComments
)

// DefinitionSource names the dictionary view holding the defining
// query of a view kind
type DefinitionSource uint8

const (
	ViewDefinitions DefinitionSource = iota + 1
	MViewDefinitions
)

// CommentSourceOf routes comment lookups of a concrete kind
func CommentSourceOf(
	kind catalog.ObjectKind,
) (CommentSource, error) {

	switch kind {
	case catalog.Table, catalog.TempTable, catalog.View:
		return TableComments, nil
	case catalog.MaterializedView:
		return MViewComments, nil
	}
	return 0, errors.Wrap(&catalog.MetadataMismatchError{
		Reason: fmt.Sprintf("no comment source for object kind %s", kind),
	}, 0)
}

// DefinitionSourceOf routes view definition lookups of a
// concrete view kind
func DefinitionSourceOf(
	kind catalog.ObjectKind,
) (DefinitionSource, error) {

	switch kind {
	case catalog.View:
		return ViewDefinitions, nil
	case catalog.MaterializedView:
		return MViewDefinitions, nil
	}
	return 0, errors.Wrap(&catalog.MetadataMismatchError{
		Reason: fmt.Sprintf("no definition source for object kind %s", kind),
	}, 0)
}
