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
	"strconv"
	"strings"
)

// PortableType is the database independent representation of
// a column type. Attribute usage follows NativeType: FLOAT keeps
// the binary precision, TIMESTAMP the fractional seconds as
// Precision and INTERVAL DAY TO SECOND keeps day and seconds
// precision as Precision and Scale.
type PortableType struct {
	Category      Category
	Precision     *int
	Scale         *int
	Length        *int
	Timezone      bool
	LocalTimezone bool
}

var categoryNames = map[Category]string{
	DOUBLE:                 "DOUBLE PRECISION",
	LONG_RAW:               "LONG RAW",
	INTERVAL_DAY_TO_SECOND: "INTERVAL DAY TO SECOND",
	INTERVAL_YEAR_TO_MONTH: "INTERVAL YEAR TO MONTH",
}

func (p PortableType) String() string {
	switch p.Category {
	case NUMERIC:
		if p.Precision == nil && p.Scale == nil {
			return string(p.Category)
		}
		precision := "*"
		if p.Precision != nil {
			precision = strconv.Itoa(*p.Precision)
		}
		if p.Scale == nil {
			return fmt.Sprintf("%s(%s)", p.Category, precision)
		}
		return fmt.Sprintf("%s(%s, %d)", p.Category, precision, *p.Scale)

	case FLOAT:
		return fmt.Sprintf("%s%s", p.Category, optionalArg(p.Precision))

	case CHAR, VARCHAR, NCHAR, NVARCHAR, RAW, UROWID:
		return fmt.Sprintf("%s%s", p.Category, optionalArg(p.Length))

	case TIMESTAMP:
		builder := strings.Builder{}
		builder.WriteString(string(p.Category))
		builder.WriteString(optionalArg(p.Precision))
		if p.LocalTimezone {
			builder.WriteString(" WITH LOCAL TIME ZONE")
		} else if p.Timezone {
			builder.WriteString(" WITH TIME ZONE")
		}
		return builder.String()

	case INTERVAL_DAY_TO_SECOND:
		return fmt.Sprintf("INTERVAL DAY%s TO SECOND%s", optionalArg(p.Precision), optionalArg(p.Scale))

	case INTERVAL_YEAR_TO_MONTH:
		return fmt.Sprintf("INTERVAL YEAR%s TO MONTH", optionalArg(p.Precision))
	}

	if name, ok := categoryNames[p.Category]; ok {
		return name
	}
	return string(p.Category)
}

func (p PortableType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
