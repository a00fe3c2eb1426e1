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

package datatypes

import (
	"fmt"
	"github.com/go-errors/errors"
	"regexp"
	"strconv"
	"strings"
)

// Native type base names as stored in ALL_TAB_COLS.DATA_TYPE
// (without precision and time zone decorations)
const (
	NativeNumber              = "NUMBER"
	NativeFloat               = "FLOAT"
	NativeBinaryFloat         = "BINARY_FLOAT"
	NativeBinaryDouble        = "BINARY_DOUBLE"
	NativeVarchar2            = "VARCHAR2"
	NativeNVarchar2           = "NVARCHAR2"
	NativeChar                = "CHAR"
	NativeNChar               = "NCHAR"
	NativeDate                = "DATE"
	NativeTimestamp           = "TIMESTAMP"
	NativeIntervalDayToSecond = "INTERVAL DAY TO SECOND"
	NativeIntervalYearToMonth = "INTERVAL YEAR TO MONTH"
	NativeRaw                 = "RAW"
	NativeLongRaw             = "LONG RAW"
	NativeLong                = "LONG"
	NativeBlob                = "BLOB"
	NativeClob                = "CLOB"
	NativeNClob               = "NCLOB"
	NativeBFile               = "BFILE"
	NativeRowId               = "ROWID"
	NativeURowId              = "UROWID"
	NativeBoolean             = "BOOLEAN"
	NativeJson                = "JSON"
)

// Variant is a set of storage variant flags of a native type
type Variant uint8

const (
	CharSemantics Variant = 1 << iota
	ByteSemantics
	WithTimeZone
	WithLocalTimeZone
)

// Has returns true if all bits of flag are set
func (v Variant) Has(
	flag Variant,
) bool {

	return v&flag == flag
}

// NativeType describes a column type the way the database
// declares it. Precision, Scale and Length are only set when
// the native type carries them: NUMBER uses precision and scale,
// FLOAT the binary precision, TIMESTAMP the fractional seconds
// precision as Precision, INTERVAL DAY TO SECOND the day precision
// and the fractional seconds as Scale, character and RAW types
// use Length.
type NativeType struct {
	Name      string
	Precision *int
	Scale     *int
	Length    *int
	Variants  Variant
}

func (n NativeType) String() string {
	switch n.Name {
	case NativeNumber:
		if n.Precision == nil && n.Scale == nil {
			return n.Name
		}
		precision := "*"
		if n.Precision != nil {
			precision = strconv.Itoa(*n.Precision)
		}
		if n.Scale == nil {
			return fmt.Sprintf("%s(%s)", n.Name, precision)
		}
		return fmt.Sprintf("%s(%s,%d)", n.Name, precision, *n.Scale)

	case NativeFloat:
		if n.Precision == nil {
			return n.Name
		}
		return fmt.Sprintf("%s(%d)", n.Name, *n.Precision)

	case NativeVarchar2, NativeChar, NativeNVarchar2, NativeNChar, NativeRaw, NativeURowId:
		if n.Length == nil {
			return n.Name
		}
		semantics := ""
		if n.Variants.Has(CharSemantics) {
			semantics = " CHAR"
		} else if n.Variants.Has(ByteSemantics) {
			semantics = " BYTE"
		}
		return fmt.Sprintf("%s(%d%s)", n.Name, *n.Length, semantics)

	case NativeTimestamp:
		builder := strings.Builder{}
		builder.WriteString(n.Name)
		if n.Precision != nil {
			builder.WriteString(fmt.Sprintf("(%d)", *n.Precision))
		}
		if n.Variants.Has(WithLocalTimeZone) {
			builder.WriteString(" WITH LOCAL TIME ZONE")
		} else if n.Variants.Has(WithTimeZone) {
			builder.WriteString(" WITH TIME ZONE")
		}
		return builder.String()

	case NativeIntervalDayToSecond:
		return fmt.Sprintf("INTERVAL DAY%s TO SECOND%s", optionalArg(n.Precision), optionalArg(n.Scale))

	case NativeIntervalYearToMonth:
		return fmt.Sprintf("INTERVAL YEAR%s TO MONTH", optionalArg(n.Precision))
	}
	return n.Name
}

func (n NativeType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func optionalArg(
	value *int,
) string {

	if value == nil {
		return ""
	}
	return fmt.Sprintf("(%d)", *value)
}

var (
	intervalDayToSecondRegex = regexp.MustCompile(`^INTERVAL DAY(?:\s*\((\d+)\))? TO SECOND(?:\s*\((\d+)\))?$`)
	intervalYearToMonthRegex = regexp.MustCompile(`^INTERVAL YEAR(?:\s*\((\d+)\))? TO MONTH$`)
	timestampRegex           = regexp.MustCompile(`^TIMESTAMP(?:\s*\((\d+)\))?( WITH( LOCAL)? TIME ZONE)?$`)
	genericTypeRegex         = regexp.MustCompile(
		`^([A-Z][A-Z0-9_]*(?: [A-Z][A-Z0-9_]*)*?)\s*(?:\(\s*(\*|\d+)\s*(?:,\s*(-?\d+)\s*)?(?:\s(CHAR|BYTE))?\s*\))?$`,
	)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// aliases are ANSI names Oracle accepts in DDL and stores
// as one of its own types
var aliases = map[string]NativeType{
	"INTEGER":          {Name: NativeNumber, Scale: intPtr(0)},
	"INT":              {Name: NativeNumber, Scale: intPtr(0)},
	"SMALLINT":         {Name: NativeNumber, Scale: intPtr(0)},
	"DOUBLE PRECISION": {Name: NativeFloat, Precision: intPtr(126)},
	"REAL":             {Name: NativeFloat, Precision: intPtr(63)},
}

var argumentless = map[string]bool{
	NativeBinaryFloat:  true,
	NativeBinaryDouble: true,
	NativeDate:         true,
	NativeLongRaw:      true,
	NativeLong:         true,
	NativeBlob:         true,
	NativeClob:         true,
	NativeNClob:        true,
	NativeBFile:        true,
	NativeRowId:        true,
	NativeBoolean:      true,
	NativeJson:         true,
}

// ParseNativeType parses a native type declaration such as
// NUMBER(10,2), FLOAT(16), NVARCHAR2(42) or TIMESTAMP(6) WITH
// TIME ZONE into a NativeType. It is the inverse of String.
func ParseNativeType(
	declaration string,
) (NativeType, error) {

	normalized := strings.ToUpper(strings.TrimSpace(declaration))
	normalized = whitespaceRegex.ReplaceAllString(normalized, " ")
	if normalized == "" {
		return NativeType{}, errors.Errorf("empty native type declaration")
	}

	if matches := intervalDayToSecondRegex.FindStringSubmatch(normalized); matches != nil {
		return NativeType{
			Name:      NativeIntervalDayToSecond,
			Precision: parseOptionalInt(matches[1]),
			Scale:     parseOptionalInt(matches[2]),
		}, nil
	}

	if matches := intervalYearToMonthRegex.FindStringSubmatch(normalized); matches != nil {
		return NativeType{
			Name:      NativeIntervalYearToMonth,
			Precision: parseOptionalInt(matches[1]),
		}, nil
	}

	if matches := timestampRegex.FindStringSubmatch(normalized); matches != nil {
		nativeType := NativeType{
			Name:      NativeTimestamp,
			Precision: parseOptionalInt(matches[1]),
		}
		if matches[3] != "" {
			nativeType.Variants |= WithLocalTimeZone
		} else if matches[2] != "" {
			nativeType.Variants |= WithTimeZone
		}
		return nativeType, nil
	}

	matches := genericTypeRegex.FindStringSubmatch(normalized)
	if matches == nil {
		return NativeType{}, errors.Errorf("illegal native type declaration '%s'", declaration)
	}

	name, first, second, semantics := matches[1], matches[2], matches[3], matches[4]
	hasArguments := first != ""

	if alias, ok := aliases[name]; ok {
		if hasArguments {
			return NativeType{}, errors.Errorf("native type '%s' takes no arguments", name)
		}
		return alias, nil
	}

	switch name {
	case NativeNumber, "NUMERIC", "DECIMAL", "DEC":
		nativeType := NativeType{Name: NativeNumber}
		if hasArguments && first != "*" {
			nativeType.Precision = parseOptionalInt(first)
		}
		nativeType.Scale = parseOptionalInt(second)
		if semantics != "" {
			return NativeType{}, errors.Errorf("native type '%s' takes no length semantics", name)
		}
		return nativeType, nil

	case NativeFloat:
		if second != "" || semantics != "" || first == "*" {
			return NativeType{}, errors.Errorf("native type '%s' only takes a precision", name)
		}
		return NativeType{Name: NativeFloat, Precision: parseOptionalInt(first)}, nil

	case NativeVarchar2, "VARCHAR", NativeChar, NativeNVarchar2, NativeNChar, NativeRaw, NativeURowId:
		if name == "VARCHAR" {
			name = NativeVarchar2
		}
		if second != "" || first == "*" {
			return NativeType{}, errors.Errorf("native type '%s' only takes a length", name)
		}
		nativeType := NativeType{Name: name, Length: parseOptionalInt(first)}
		switch semantics {
		case "CHAR":
			nativeType.Variants |= CharSemantics
		case "BYTE":
			nativeType.Variants |= ByteSemantics
		}
		if semantics != "" && name != NativeVarchar2 && name != NativeChar {
			return NativeType{}, errors.Errorf("native type '%s' takes no length semantics", name)
		}
		return nativeType, nil
	}

	if argumentless[name] {
		if hasArguments {
			return NativeType{}, errors.Errorf("native type '%s' takes no arguments", name)
		}
		return NativeType{Name: name}, nil
	}

	return NativeType{}, errors.Errorf("unsupported native type '%s'", name)
}

func parseOptionalInt(
	value string,
) *int {

	if value == "" {
		return nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &v
}

func intPtr(
	value int,
) *int {

	return &value
}
