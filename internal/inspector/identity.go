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

package inspector

import (
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"math/big"
	"strconv"
	"strings"
)

const generationAlways = "ALWAYS"

// parseIdentity parses the generation type and identity options of
// an identity column, formatted as "ALWAYS,START WITH: 1, INCREMENT
// BY: 1, ...". Options missing in the string keep their defaults.
func parseIdentity(
	value string, onNull bool,
) (catalog.Identity, error) {

	identity := catalog.DefaultIdentity()
	identity.OnNull = onNull

	generation, options, _ := strings.Cut(value, ",")
	identity.Always = strings.EqualFold(strings.TrimSpace(generation), generationAlways)

	for _, option := range strings.Split(options, ",") {
		key, optionValue, found := strings.Cut(option, ":")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		optionValue = strings.TrimSpace(optionValue)

		var err error
		switch key {
		case "START WITH":
			identity.Start, err = parseBigInt(key, optionValue)
		case "INCREMENT BY":
			identity.Increment, err = parseBigInt(key, optionValue)
		case "MAX_VALUE":
			identity.MaxValue, err = parseBigInt(key, optionValue)
		case "MIN_VALUE":
			identity.MinValue, err = parseBigInt(key, optionValue)
		case "CYCLE_FLAG":
			identity.Cycle = optionValue == "Y"
		case "ORDER_FLAG":
			identity.Order = optionValue == "Y"
		case "CACHE_SIZE":
			identity.Cache, err = strconv.ParseInt(optionValue, 10, 64)
			if err != nil {
				err = errors.Errorf("illegal identity option %s '%s'", key, optionValue)
			}
		}
		if err != nil {
			return catalog.Identity{}, err
		}
	}
	return identity, nil
}

func parseBigInt(
	key, value string,
) (*big.Int, error) {

	number, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, errors.Errorf("illegal identity option %s '%s'", key, value)
	}
	return number, nil
}
