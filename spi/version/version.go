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

package version

import (
	"fmt"
	"github.com/go-errors/errors"
	"regexp"
	"strconv"
)

var oracleVersionRegex = regexp.MustCompile(`([0-9]+)\.([0-9]+)(\.([0-9]+))?`)

const (
	ORA_11_VERSION OracleVersion = 110000
	ORA_12_VERSION OracleVersion = 120000
	ORA_23_VERSION OracleVersion = 230000
)

var (
	BinName    = "catalog-reflector"
	Version    = "0.1.0"
	CommitHash = "unknown"
	Branch     = "unknown"
)

// OracleVersion represents the parsed and comparable
// version number of the connected Oracle Database server
type OracleVersion uint

// Major returns the major version
func (ov OracleVersion) Major() uint {
	return uint(ov) / 10000
}

// Minor returns the minor version
func (ov OracleVersion) Minor() uint {
	return (uint(ov) / 100) % 100
}

// Release returns the release update
func (ov OracleVersion) Release() uint {
	return uint(ov) % 100
}

// String returns the string representation of the Oracle
// server version as in >>major.minor.release<<
func (ov OracleVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", ov.Major(), ov.Minor(), ov.Release())
}

// Compare returns a negative value if the current version
// is lower than other, returns 0 if the versions match,
// otherwise it returns a value larger than 0.
func (ov OracleVersion) Compare(
	other OracleVersion,
) int {

	if ov < other {
		return -1
	}
	if ov > other {
		return 1
	}
	return 0
}

// AtLeast returns true if the version is equal to or
// newer than the given version
func (ov OracleVersion) AtLeast(
	other OracleVersion,
) bool {

	return ov.Compare(other) >= 0
}

// ParseOracleVersion parses a version string as returned by
// PRODUCT_COMPONENT_VERSION or V$INSTANCE (for example 19.3.0.0.0)
// and returns an OracleVersion instance
func ParseOracleVersion(
	version string,
) (OracleVersion, error) {

	matches := oracleVersionRegex.FindStringSubmatch(version)
	if len(matches) < 3 {
		return 0, errors.Errorf("failed to extract oracle version from '%s'", version)
	}

	v, err := strconv.ParseUint(matches[1], 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, 0)
	}
	major := uint(v)

	v, err = strconv.ParseUint(matches[2], 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, 0)
	}
	minor := uint(v)

	release := uint(0)
	if len(matches) == 5 && matches[4] != "" {
		v, err = strconv.ParseUint(matches[4], 10, 32)
		if err != nil {
			return 0, errors.Wrap(err, 0)
		}
		release = uint(v)
	}

	return OracleVersion((major * 10000) + (minor * 100) + release), nil
}
