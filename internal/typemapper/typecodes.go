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
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/datatypes"
	"github.com/samber/lo"
)

// Oracle external data type codes as reported by the OCI describe
// calls and driver column type information
const (
	TypeCodeVarchar2            = 1
	TypeCodeNumber              = 2
	TypeCodeLong                = 8
	TypeCodeDate                = 12
	TypeCodeRaw                 = 23
	TypeCodeLongRaw             = 24
	TypeCodeRowId               = 69
	TypeCodeChar                = 96
	TypeCodeBinaryFloat         = 100
	TypeCodeBinaryDouble        = 101
	TypeCodeClob                = 112
	TypeCodeBlob                = 113
	TypeCodeBFile               = 114
	TypeCodeJson                = 119
	TypeCodeTimestamp           = 180
	TypeCodeTimestampTZ         = 181
	TypeCodeIntervalYearToMonth = 182
	TypeCodeIntervalDayToSecond = 183
	TypeCodeURowId              = 208
	TypeCodeTimestampLTZ        = 231
	TypeCodeBoolean             = 252
)

const (
	unconstrainedScale           = -127
	typeModifierUnset            = -1
	typeModifierPrecisionShift   = 16
	typeModifierLowerHalfBitmask = 0xffff
)

type typeCodeConverter func(typmod int) datatypes.NativeType

var typeCodes = map[int]typeCodeConverter{
	TypeCodeVarchar2:            lengthTypeCode(datatypes.NativeVarchar2),
	TypeCodeNumber:              numberTypeCode,
	TypeCodeLong:                plainTypeCode(datatypes.NativeLong),
	TypeCodeDate:                plainTypeCode(datatypes.NativeDate),
	TypeCodeRaw:                 lengthTypeCode(datatypes.NativeRaw),
	TypeCodeLongRaw:             plainTypeCode(datatypes.NativeLongRaw),
	TypeCodeRowId:               plainTypeCode(datatypes.NativeRowId),
	TypeCodeChar:                lengthTypeCode(datatypes.NativeChar),
	TypeCodeBinaryFloat:         plainTypeCode(datatypes.NativeBinaryFloat),
	TypeCodeBinaryDouble:        plainTypeCode(datatypes.NativeBinaryDouble),
	TypeCodeClob:                plainTypeCode(datatypes.NativeClob),
	TypeCodeBlob:                plainTypeCode(datatypes.NativeBlob),
	TypeCodeBFile:               plainTypeCode(datatypes.NativeBFile),
	TypeCodeJson:                plainTypeCode(datatypes.NativeJson),
	TypeCodeTimestamp:           timestampTypeCode(0),
	TypeCodeTimestampTZ:         timestampTypeCode(datatypes.WithTimeZone),
	TypeCodeTimestampLTZ:        timestampTypeCode(datatypes.WithLocalTimeZone),
	TypeCodeIntervalYearToMonth: intervalYearToMonthTypeCode,
	TypeCodeIntervalDayToSecond: intervalDayToSecondTypeCode,
	TypeCodeURowId:              lengthTypeCode(datatypes.NativeURowId),
	TypeCodeBoolean:             plainTypeCode(datatypes.NativeBoolean),
}

// FromTypeCode builds a native type from a driver type code and its
// type modifier. A negative modifier means no modifier is present.
// NUMBER and INTERVAL DAY TO SECOND pack two values into the modifier,
// the upper half carrying the precision and the lower half the signed
// scale (NUMBER) or fractional seconds precision (INTERVAL).
func FromTypeCode(
	code, typmod int,
) (datatypes.NativeType, error) {

	converter, present := typeCodes[code]
	if !present {
		return datatypes.NativeType{}, errors.Errorf("unsupported type code %d", code)
	}
	return converter(typmod), nil
}

// PackTypeModifier packs precision and scale into a type modifier
// understood by FromTypeCode
func PackTypeModifier(
	precision, scale int,
) int {

	return precision<<typeModifierPrecisionShift | (scale & typeModifierLowerHalfBitmask)
}

func unpackTypeModifier(
	typmod int,
) (precision, scale int) {

	precision = typmod >> typeModifierPrecisionShift
	scale = int(int16(typmod & typeModifierLowerHalfBitmask))
	return
}

func plainTypeCode(
	name string,
) typeCodeConverter {

	return func(_ int) datatypes.NativeType {
		return datatypes.NativeType{Name: name}
	}
}

func lengthTypeCode(
	name string,
) typeCodeConverter {

	return func(typmod int) datatypes.NativeType {
		nativeType := datatypes.NativeType{Name: name}
		if typmod > typeModifierUnset {
			nativeType.Length = lo.ToPtr(typmod)
		}
		return nativeType
	}
}

func numberTypeCode(
	typmod int,
) datatypes.NativeType {

	if typmod <= typeModifierUnset {
		return datatypes.NativeType{Name: datatypes.NativeNumber}
	}

	precision, scale := unpackTypeModifier(typmod)
	switch {
	case scale == unconstrainedScale && precision == 0:
		return datatypes.NativeType{Name: datatypes.NativeNumber}

	case scale == unconstrainedScale:
		// binary precision, the column was declared as FLOAT
		return datatypes.NativeType{Name: datatypes.NativeFloat, Precision: lo.ToPtr(precision)}

	case precision == 0:
		return datatypes.NativeType{Name: datatypes.NativeNumber, Scale: lo.ToPtr(scale)}
	}
	return datatypes.NativeType{
		Name:      datatypes.NativeNumber,
		Precision: lo.ToPtr(precision),
		Scale:     lo.ToPtr(scale),
	}
}

func timestampTypeCode(
	variants datatypes.Variant,
) typeCodeConverter {

	return func(typmod int) datatypes.NativeType {
		nativeType := datatypes.NativeType{Name: datatypes.NativeTimestamp, Variants: variants}
		if typmod > typeModifierUnset {
			nativeType.Precision = lo.ToPtr(typmod)
		}
		return nativeType
	}
}

func intervalYearToMonthTypeCode(
	typmod int,
) datatypes.NativeType {

	nativeType := datatypes.NativeType{Name: datatypes.NativeIntervalYearToMonth}
	if typmod > typeModifierUnset {
		nativeType.Precision = lo.ToPtr(typmod)
	}
	return nativeType
}

func intervalDayToSecondTypeCode(
	typmod int,
) datatypes.NativeType {

	nativeType := datatypes.NativeType{Name: datatypes.NativeIntervalDayToSecond}
	if typmod > typeModifierUnset {
		precision, scale := unpackTypeModifier(typmod)
		nativeType.Precision = lo.ToPtr(precision)
		nativeType.Scale = lo.ToPtr(scale)
	}
	return nativeType
}
