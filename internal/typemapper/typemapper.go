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

package typemapper

import (
	"fmt"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/noctarius/catalog-reflector/spi/datatypes"
	"github.com/samber/lo"
	"regexp"
	"strings"
)

const (
	doublePrecision = 126
	realPrecision   = 63
)

var precisionDecorationRegex = regexp.MustCompile(`\(\d+\)`)

// DictionaryType carries the type related columns of
// ALL_TAB_COLS for a single column
type DictionaryType struct {
	DataType      string
	DataPrecision *int
	DataScale     *int
	DataLength    *int
	CharLength    *int
	CharUsed      string
}

// FromDictionary builds the native type of a column from its
// ALL_TAB_COLS row. DATA_TYPE may carry decorations such as
// TIMESTAMP(6) WITH TIME ZONE, the attributes themselves are
// taken from the precision, scale and length columns.
func FromDictionary(
	dictionaryType DictionaryType,
) datatypes.NativeType {

	dataType := strings.ToUpper(strings.TrimSpace(dictionaryType.DataType))
	variants := datatypes.Variant(0)
	switch {
	case strings.Contains(dataType, "WITH LOCAL TIME ZONE"):
		variants |= datatypes.WithLocalTimeZone
	case strings.Contains(dataType, "WITH TIME ZONE"):
		variants |= datatypes.WithTimeZone
	}

	name := precisionDecorationRegex.ReplaceAllString(dataType, "")
	if strings.HasPrefix(name, datatypes.NativeTimestamp) {
		name = datatypes.NativeTimestamp
	}

	nativeType := datatypes.NativeType{
		Name:     name,
		Variants: variants,
	}

	switch name {
	case datatypes.NativeNumber:
		nativeType.Precision = dictionaryType.DataPrecision
		nativeType.Scale = dictionaryType.DataScale

	case datatypes.NativeFloat, datatypes.NativeIntervalYearToMonth:
		nativeType.Precision = dictionaryType.DataPrecision

	case datatypes.NativeVarchar2, datatypes.NativeChar:
		nativeType.Length = dictionaryType.CharLength
		switch dictionaryType.CharUsed {
		case "C":
			nativeType.Variants |= datatypes.CharSemantics
		case "B":
			nativeType.Variants |= datatypes.ByteSemantics
		}

	case datatypes.NativeNVarchar2, datatypes.NativeNChar:
		nativeType.Length = dictionaryType.CharLength

	case datatypes.NativeRaw, datatypes.NativeURowId:
		nativeType.Length = dictionaryType.DataLength

	case datatypes.NativeTimestamp:
		nativeType.Precision = dictionaryType.DataScale

	case datatypes.NativeIntervalDayToSecond:
		nativeType.Precision = dictionaryType.DataPrecision
		nativeType.Scale = dictionaryType.DataScale
	}
	return nativeType
}

// ToPortable maps a native type to its portable type. Native types
// without a portable equivalent map to UNKNOWN and an
// UnsupportedTypeWarning is returned alongside. The caller is
// responsible to fill in the object and column of the warning.
func ToPortable(
	native datatypes.NativeType,
) (datatypes.PortableType, *catalog.UnsupportedTypeWarning) {

	registration, present := nativeTypes[native.Name]
	if !present {
		return datatypes.PortableType{Category: datatypes.UNKNOWN},
			&catalog.UnsupportedTypeWarning{NativeType: native.String()}
	}

	if registration.converter != nil {
		return registration.converter(native), nil
	}
	return datatypes.PortableType{Category: registration.category}, nil
}

// ToNative maps a portable type back to a native type. If hint is
// not empty it is parsed as a native type declaration and used as
// long as it is compatible with the portable type, otherwise the
// default native type of the portable category is returned.
func ToNative(
	portable datatypes.PortableType,
	hint string,
) (datatypes.NativeType, error) {

	if hint != "" {
		hinted, err := datatypes.ParseNativeType(hint)
		if err != nil {
			return datatypes.NativeType{}, err
		}

		hintedPortable, warning := ToPortable(hinted)
		if warning != nil {
			return datatypes.NativeType{}, errors.Wrap(warning, 0)
		}

		if !portable.Category.Compatible(hintedPortable.Category) {
			return datatypes.NativeType{}, errors.Wrap(&catalog.MetadataMismatchError{
				Reason: fmt.Sprintf(
					"native type hint '%s' is incompatible with portable type %s", hint, portable,
				),
			}, 0)
		}
		return hinted, nil
	}

	registration, present := portableTypes[portable.Category]
	if !present {
		return datatypes.NativeType{}, errors.Wrap(&catalog.MetadataMismatchError{
			Reason: fmt.Sprintf("portable type %s has no native representation", portable),
		}, 0)
	}

	if registration.converter != nil {
		return registration.converter(portable), nil
	}
	return datatypes.NativeType{Name: registration.nativeName}, nil
}

func number2portable(
	native datatypes.NativeType,
) datatypes.PortableType {

	if native.Precision == nil && native.Scale != nil && *native.Scale == 0 {
		return datatypes.PortableType{Category: datatypes.INTEGER}
	}
	return datatypes.PortableType{
		Category:  datatypes.NUMERIC,
		Precision: native.Precision,
		Scale:     native.Scale,
	}
}

func float2portable(
	native datatypes.NativeType,
) datatypes.PortableType {

	// FLOAT without precision is FLOAT(126)
	precision := lo.FromPtrOr(native.Precision, doublePrecision)
	switch precision {
	case doublePrecision:
		return datatypes.PortableType{Category: datatypes.DOUBLE}
	case realPrecision:
		return datatypes.PortableType{Category: datatypes.REAL}
	}
	return datatypes.PortableType{
		Category:  datatypes.FLOAT,
		Precision: native.Precision,
	}
}

func lengthOf(
	category datatypes.Category,
) portableConverter {

	return func(native datatypes.NativeType) datatypes.PortableType {
		return datatypes.PortableType{
			Category: category,
			Length:   native.Length,
		}
	}
}

func timestamp2portable(
	native datatypes.NativeType,
) datatypes.PortableType {

	return datatypes.PortableType{
		Category:      datatypes.TIMESTAMP,
		Precision:     native.Precision,
		Timezone:      native.Variants.Has(datatypes.WithTimeZone),
		LocalTimezone: native.Variants.Has(datatypes.WithLocalTimeZone),
	}
}

func intervalDayToSecond2portable(
	native datatypes.NativeType,
) datatypes.PortableType {

	return datatypes.PortableType{
		Category:  datatypes.INTERVAL_DAY_TO_SECOND,
		Precision: native.Precision,
		Scale:     native.Scale,
	}
}

func intervalYearToMonth2portable(
	native datatypes.NativeType,
) datatypes.PortableType {

	return datatypes.PortableType{
		Category:  datatypes.INTERVAL_YEAR_TO_MONTH,
		Precision: native.Precision,
	}
}

func integer2native(
	_ datatypes.PortableType,
) datatypes.NativeType {

	return datatypes.NativeType{
		Name:  datatypes.NativeNumber,
		Scale: lo.ToPtr(0),
	}
}

func numeric2native(
	portable datatypes.PortableType,
) datatypes.NativeType {

	return datatypes.NativeType{
		Name:      datatypes.NativeNumber,
		Precision: portable.Precision,
		Scale:     portable.Scale,
	}
}

func float2native(
	portable datatypes.PortableType,
) datatypes.NativeType {

	return datatypes.NativeType{
		Name:      datatypes.NativeFloat,
		Precision: lo.ToPtr(lo.FromPtrOr(portable.Precision, doublePrecision)),
	}
}

func fixedFloat2native(
	precision int,
) nativeConverter {

	return func(_ datatypes.PortableType) datatypes.NativeType {
		return datatypes.NativeType{
			Name:      datatypes.NativeFloat,
			Precision: lo.ToPtr(precision),
		}
	}
}

func length2native(
	name string,
	variants datatypes.Variant,
) nativeConverter {

	return func(portable datatypes.PortableType) datatypes.NativeType {
		return datatypes.NativeType{
			Name:     name,
			Length:   portable.Length,
			Variants: variants,
		}
	}
}

func timestamp2native(
	portable datatypes.PortableType,
) datatypes.NativeType {

	variants := datatypes.Variant(0)
	if portable.LocalTimezone {
		variants |= datatypes.WithLocalTimeZone
	} else if portable.Timezone {
		variants |= datatypes.WithTimeZone
	}
	return datatypes.NativeType{
		Name:      datatypes.NativeTimestamp,
		Precision: portable.Precision,
		Variants:  variants,
	}
}

func intervalDayToSecond2native(
	portable datatypes.PortableType,
) datatypes.NativeType {

	return datatypes.NativeType{
		Name:      datatypes.NativeIntervalDayToSecond,
		Precision: portable.Precision,
		Scale:     portable.Scale,
	}
}

func intervalYearToMonth2native(
	portable datatypes.PortableType,
) datatypes.NativeType {

	return datatypes.NativeType{
		Name:      datatypes.NativeIntervalYearToMonth,
		Precision: portable.Precision,
	}
}
