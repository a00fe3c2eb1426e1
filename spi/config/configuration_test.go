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

package config

import (
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"reflect"
	"runtime"
	"testing"
	"time"
)

func Test_Env_Vars(
	t *testing.T,
) {

	os.Setenv("FOO_BAR", "foo")
	defer os.Unsetenv("FOO_BAR")

	os.Setenv("FOO_BAR__BAZ", "bar")
	defer os.Unsetenv("FOO_BAR__BAZ")

	// On Windows environment variables are case-insensitive, therefore,
	// this test will always fail if trying to use different casing versions
	if runtime.GOOS != "windows" {
		os.Setenv("foo_bar", "bar")
		defer os.Unsetenv("foo_bar")
	}

	v, found := findEnvProperty("foo.bar", "test")
	assert.Equal(t, true, found)
	assert.Equal(t, "foo", v)

	v, found = findEnvProperty("foo.bar_baz", "test")
	assert.Equal(t, true, found)
	assert.Equal(t, "bar", v)

	v, found = findEnvProperty("oof.bar", "test")
	assert.Equal(t, false, found)
	assert.Equal(t, "test", v)
}

func Test_Typed_Env_Vars(
	t *testing.T,
) {

	os.Setenv("REFLECTION_RESOLVESYNONYMS", "true")
	defer os.Unsetenv("REFLECTION_RESOLVESYNONYMS")

	os.Setenv("REFLECTION_MAXSYNONYMHOPS", "5")
	defer os.Unsetenv("REFLECTION_MAXSYNONYMHOPS")

	os.Setenv("REFLECTION_EXCLUDETABLESPACES", "SYSTEM, USERS")
	defer os.Unsetenv("REFLECTION_EXCLUDETABLESPACES")

	os.Setenv("ORACLE_TIMEOUT", "90s")
	defer os.Unsetenv("ORACLE_TIMEOUT")

	config := &Config{}
	assert.True(t, GetOrDefault(config, PropertyReflectionResolveSynonyms, false))
	assert.Equal(t, 5, GetOrDefault(config, PropertyReflectionMaxSynonymHops, 3))
	assert.Equal(t, []string{"SYSTEM", "USERS"}, GetOrDefault(config, PropertyReflectionExcludeTablespaces, []string{}))
	assert.Equal(t, time.Second*90, GetOrDefault(config, PropertyOracleTimeout, time.Second))
}

func Test_Property_Extraction(
	t *testing.T,
) {

	config := Config{
		Reflection: ReflectionConfig{
			Schema:             "scott",
			ExcludeTablespaces: []string{"foo", "bar"},
		},
	}

	value := reflect.ValueOf(config)
	v1, found := findProperty(value, "reflection")
	assert.Equal(t, true, found)

	v2, found := findProperty(v1, "schema")
	assert.Equal(t, true, found)
	assert.Equal(t, "scott", v2.Interface().(string))

	v3, found := findProperty(v1, "excludetablespaces")
	assert.Equal(t, true, found)
	assert.Equal(t, []string{"foo", "bar"}, v3.Interface().([]string))

	_, found = findProperty(v1, "nonexistent")
	assert.Equal(t, false, found)
}

func Test_Config_Property_Reading(
	t *testing.T,
) {

	config := &Config{
		Oracle: OracleConfig{
			Connection: "localhost:1521/FREEPDB1",
		},
		Reflection: ReflectionConfig{
			ResolveSynonyms:    lo.ToPtr(true),
			ExcludeTablespaces: []string{"foo", "bar"},
		},
	}

	v1 := GetOrDefault(config, PropertyOracleConnection, "foo")
	assert.Equal(t, "localhost:1521/FREEPDB1", v1)

	v2 := GetOrDefault(config, PropertyReflectionExcludeTablespaces, []string{"baz"})
	assert.Equal(t, []string{"foo", "bar"}, v2)

	v3 := GetOrDefault(config, PropertyReflectionResolveSynonyms, false)
	assert.Equal(t, true, v3)

	v4 := GetOrDefault(config, "reflection.non.existent", true)
	assert.Equal(t, true, v4)

	v5 := GetOrDefault(config, PropertyReflectionMaxSynonymHops, 3)
	assert.Equal(t, 3, v5)

	os.Setenv("ORACLE_CONNECTION", "remote:1521/ORCL")
	defer os.Unsetenv("ORACLE_CONNECTION")

	v6 := GetOrDefault(config, PropertyOracleConnection, "foo")
	assert.Equal(t, "remote:1521/ORCL", v6)
}

func Test_Unmarshall_Toml_And_Yaml(
	t *testing.T,
) {

	tomlContent := `
[oracle]
connection = "localhost:1521/FREEPDB1"
user = "scott"

[reflection]
resolvesynonyms = true
excludetablespaces = ["SYSTEM"]

[reflection.schematranslatemap]
"" = "app"
legacy = "app_v2"
`

	config := &Config{}
	require.NoError(t, Unmarshall([]byte(tomlContent), config, true))
	assert.Equal(t, "scott", config.Oracle.User)
	assert.Equal(t, true, *config.Reflection.ResolveSynonyms)
	assert.Equal(t, map[string]string{"": "app", "legacy": "app_v2"}, config.Reflection.SchemaTranslateMap)

	yamlContent := `
oracle:
  connection: localhost:1521/FREEPDB1
reflection:
  maxsynonymhops: 2
  filter:
    condition: kind == "TABLE"
`

	config = &Config{}
	require.NoError(t, Unmarshall([]byte(yamlContent), config, false))
	assert.Equal(t, "localhost:1521/FREEPDB1", config.Oracle.Connection)
	assert.Equal(t, 2, config.Reflection.MaxSynonymHops)
	assert.Equal(t, `kind == "TABLE"`, config.Reflection.Filter.Condition)
}
