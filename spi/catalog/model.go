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
	"github.com/noctarius/catalog-reflector/spi/datatypes"
	"math/big"
	"strings"
)

// ObjectRef identifies a catalog object. An empty Owner resolves
// against the connection's default schema, an empty DBLink means
// the local database.
type ObjectRef struct {
	Owner  string     `json:"owner,omitempty"`
	Name   string     `json:"name"`
	DBLink string     `json:"dblink,omitempty"`
	Kind   ObjectKind `json:"kind,omitempty"`
}

// Key returns the lookup triple of the reference, the kind
// is not part of an object's identity
func (r ObjectRef) Key() ObjectRef {
	return ObjectRef{Owner: r.Owner, Name: r.Name, DBLink: r.DBLink}
}

func (r ObjectRef) String() string {
	builder := strings.Builder{}
	if r.Owner != "" {
		builder.WriteString(r.Owner)
		builder.WriteString(".")
	}
	builder.WriteString(r.Name)
	if r.DBLink != "" {
		builder.WriteString("@")
		builder.WriteString(r.DBLink)
	}
	return builder.String()
}

// SynonymLink is a directed edge of the synonym resolution graph
type SynonymLink struct {
	From ObjectRef `json:"from"`
	To   ObjectRef `json:"to"`
}

// ObjectKey is the key of a bulk reflection result. An empty
// schema stands for the default schema of the connection.
type ObjectKey struct {
	Schema string `json:"schema,omitempty"`
	Name   string `json:"name"`
}

func (k ObjectKey) String() string {
	if k.Schema == "" {
		return k.Name
	}
	return fmt.Sprintf("%s.%s", k.Schema, k.Name)
}

func (k ObjectKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Column struct {
	Name       string                 `json:"name"`
	Nullable   bool                   `json:"nullable"`
	Type       datatypes.PortableType `json:"type"`
	NativeType datatypes.NativeType   `json:"native_type"`
	Default    *string                `json:"default,omitempty"`
	Comment    *string                `json:"comment,omitempty"`
	Identity   *Identity              `json:"identity,omitempty"`
	Computed   *Computed              `json:"computed,omitempty"`
}

// Computed describes a virtual column
type Computed struct {
	SQLText   string `json:"sqltext"`
	Persisted bool   `json:"persisted"`
}

// Identity describes the generator of an identity column.
// All fields are populated, options missing in the catalog
// carry the database defaults.
type Identity struct {
	Always    bool     `json:"always"`
	OnNull    bool     `json:"on_null"`
	Start     *big.Int `json:"start"`
	Increment *big.Int `json:"increment"`
	MinValue  *big.Int `json:"minvalue"`
	MaxValue  *big.Int `json:"maxvalue"`
	Cycle     bool     `json:"cycle"`
	Cache     int64    `json:"cache"`
	Order     bool     `json:"order"`
}

const defaultIdentityCache = 20

// DefaultIdentity returns the generator settings Oracle applies
// when an identity column is declared without options
func DefaultIdentity() Identity {
	maxValue := new(big.Int).Exp(big.NewInt(10), big.NewInt(28), nil)
	maxValue.Sub(maxValue, big.NewInt(1))
	return Identity{
		Start:     big.NewInt(1),
		Increment: big.NewInt(1),
		MinValue:  big.NewInt(1),
		MaxValue:  maxValue,
		Cache:     defaultIdentityCache,
	}
}

// Equal compares two identity definitions by value
func (i Identity) Equal(
	other Identity,
) bool {

	return i.Always == other.Always &&
		i.OnNull == other.OnNull &&
		bigEqual(i.Start, other.Start) &&
		bigEqual(i.Increment, other.Increment) &&
		bigEqual(i.MinValue, other.MinValue) &&
		bigEqual(i.MaxValue, other.MaxValue) &&
		i.Cycle == other.Cycle &&
		i.Cache == other.Cache &&
		i.Order == other.Order
}

func bigEqual(
	this, that *big.Int,
) bool {

	if this == nil || that == nil {
		return this == that
	}
	return this.Cmp(that) == 0
}

type Index struct {
	Name           string         `json:"name"`
	ColumnNames    []string       `json:"column_names"`
	Unique         bool           `json:"unique"`
	DialectOptions map[string]any `json:"dialect_options"`
}

type PrimaryKey struct {
	Name               string   `json:"name,omitempty"`
	ConstrainedColumns []string `json:"constrained_columns"`
}

type ForeignKey struct {
	Name               string            `json:"name"`
	ConstrainedColumns []string          `json:"constrained_columns"`
	ReferredSchema     string            `json:"referred_schema,omitempty"`
	ReferredTable      string            `json:"referred_table"`
	ReferredColumns    []string          `json:"referred_columns"`
	Options            map[string]string `json:"options"`
}

type UniqueConstraint struct {
	Name            string   `json:"name"`
	ColumnNames     []string `json:"column_names"`
	DuplicatesIndex string   `json:"duplicates_index,omitempty"`
}

type CheckConstraint struct {
	Name    string `json:"name"`
	SQLText string `json:"sqltext"`
}

type TableComment struct {
	Text *string `json:"text"`
}

type TableOptions map[string]any

// Dialect option keys used in index and table options
const (
	OptionCompress = "oracle_compress"
	OptionBitmap   = "oracle_bitmap"
	OptionOnDelete = "ondelete"
)
