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

package naming

import (
	"regexp"
	"strings"
)

var legalCharacters = regexp.MustCompile(`^[A-Za-z0-9_$]+$`)

var reservedWords = makeReservedWords(
	"SHARE RAW DROP BETWEEN FROM DESC OPTION PRIOR LONG THEN " +
		"DEFAULT ALTER IS INTO MINUS INTEGER NUMBER GRANT IDENTIFIED " +
		"ALL TO ORDER ON FLOAT DATE HAVING CLUSTER NOWAIT RESOURCE " +
		"ANY TABLE INDEX FOR UPDATE WHERE CHECK SMALLINT WITH DELETE " +
		"BY ASC REVOKE LIKE SIZE RENAME NOCOMPRESS NULL GROUP VALUES " +
		"AS IN VIEW EXCLUSIVE COMPRESS SYNONYM SELECT INSERT EXISTS " +
		"NOT TRIGGER ELSE CREATE INTERSECT PCTFREE DISTINCT USER " +
		"CONNECT SET MODE OF UNIQUE VARCHAR2 VARCHAR LOCK OR CHAR " +
		"DECIMAL UNION PUBLIC AND START UID COMMENT CURRENT LEVEL",
)

func makeReservedWords(
	words string,
) map[string]bool {

	reserved := make(map[string]bool)
	for _, word := range strings.Fields(words) {
		reserved[strings.ToLower(word)] = true
	}
	return reserved
}

// RequiresQuotes returns true if the identifier cannot be written
// without quotes in a statement, either since it contains illegal
// characters, is a reserved word or is case-sensitive
func RequiresQuotes(
	identifier string,
) bool {

	if identifier == "" {
		return true
	}
	lower := strings.ToLower(identifier)
	return reservedWords[lower] ||
		strings.ContainsAny(identifier[:1], "0123456789_$") ||
		!legalCharacters.MatchString(identifier) ||
		lower != identifier
}

// Normalize converts a case-insensitive dictionary name (stored in
// upper case) into its lower case form. Names which only work quoted
// are returned unchanged.
func Normalize(
	name string,
) string {

	if name == "" {
		return name
	}
	lower := strings.ToLower(name)
	if strings.ToUpper(name) == name && !RequiresQuotes(lower) {
		return lower
	}
	return name
}

// Denormalize converts a lower case name into the upper case form
// the dictionary stores case-insensitive names in. Names which need
// quoting keep their case.
func Denormalize(
	name string,
) string {

	if name == "" {
		return name
	}
	if strings.ToLower(name) == name && !RequiresQuotes(name) {
		return strings.ToUpper(name)
	}
	return name
}

// DenormalizeAll denormalizes every name of the slice
func DenormalizeAll(
	names []string,
) []string {

	denormalized := make([]string, 0, len(names))
	for _, name := range names {
		denormalized = append(denormalized, Denormalize(name))
	}
	return denormalized
}

// NormalizeAll normalizes every name of the slice
func NormalizeAll(
	names []string,
) []string {

	normalized := make([]string, 0, len(names))
	for _, name := range names {
		normalized = append(normalized, Normalize(name))
	}
	return normalized
}
