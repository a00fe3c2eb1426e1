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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Parse_Oracle_Version(
	t *testing.T,
) {

	cases := map[string]OracleVersion{
		"19.3.0.0.0":   190300,
		"10.2.0.5.0":   100200,
		"23.0":         230000,
		"11.2.0.4.0":   110200,
		"Oracle 12.1.": 120100,
	}

	for banner, expected := range cases {
		v, err := ParseOracleVersion(banner)
		require.NoError(t, err, banner)
		assert.Equal(t, expected, v, banner)
	}

	_, err := ParseOracleVersion("unknown")
	assert.Error(t, err)
}

func Test_Oracle_Version_Comparison(
	t *testing.T,
) {

	v, err := ParseOracleVersion("19.3.0.0.0")
	require.NoError(t, err)

	assert.Equal(t, uint(19), v.Major())
	assert.Equal(t, uint(3), v.Minor())
	assert.Equal(t, uint(0), v.Release())
	assert.Equal(t, "19.3.0", v.String())

	assert.True(t, v.AtLeast(ORA_12_VERSION))
	assert.False(t, v.AtLeast(ORA_23_VERSION))
	assert.Equal(t, 0, v.Compare(190300))
	assert.Equal(t, -1, ORA_11_VERSION.Compare(v))
}
