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
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type OracleConfig struct {
	Connection     string        `toml:"connection"`
	User           string        `toml:"user"`
	Password       string        `toml:"password"`
	Timeout        time.Duration `toml:"timeout"`
	ConnectRetries *int          `toml:"connectretries"`
}

type ReflectionConfig struct {
	Schema             string             `toml:"schema"`
	DBLink             string             `toml:"dblink"`
	ResolveSynonyms    *bool              `toml:"resolvesynonyms"`
	ExcludeTablespaces []string           `toml:"excludetablespaces"`
	MaxSynonymHops     int                `toml:"maxsynonymhops"`
	FilterBatchSize    int                `toml:"filterbatchsize"`
	SchemaTranslateMap map[string]string  `toml:"schematranslatemap"`
	Filter             ObjectFilterConfig `toml:"filter"`
}

type ObjectFilterConfig struct {
	DefaultValue *bool  `toml:"default"`
	Condition    string `toml:"condition"`
}

type SnapshotConfig struct {
	Path   string   `toml:"path"`
	Owners []string `toml:"owners"`
	Source string   `toml:"source"`
}

type StatsConfig struct {
	Enabled *bool `toml:"enabled"`
	Runtime *bool `toml:"runtime"`
}

type Config struct {
	Oracle     OracleConfig     `toml:"oracle"`
	Reflection ReflectionConfig `toml:"reflection"`
	Snapshot   SnapshotConfig   `toml:"snapshot"`
	Stats      StatsConfig      `toml:"stats"`
	Logging    LoggerConfig     `toml:"logging"`
}

type LoggerConfig struct {
	Level   string                     `toml:"level"`
	Outputs LoggerOutputConfig         `toml:"output"`
	Loggers map[string]SubLoggerConfig `toml:"loggers"`
}

type LoggerOutputConfig struct {
	Console LoggerConsoleConfig `toml:"console"`
	File    LoggerFileConfig    `toml:"file"`
}

type SubLoggerConfig struct {
	Level   *string            `toml:"level"`
	Outputs LoggerOutputConfig `toml:"output"`
}

type LoggerConsoleConfig struct {
	Enabled *bool `toml:"enabled"`
}

type LoggerFileConfig struct {
	Enabled     *bool   `toml:"enabled"`
	Path        string  `toml:"path"`
	Rotate      *bool   `toml:"rotate"`
	MaxSize     *string `toml:"maxsize"`
	MaxDuration *int    `toml:"maxduration"`
	Compress    bool    `toml:"compress"`
}

// GetOrDefault reads the property addressed by the canonical
// (dot separated) property name. Environment variables take
// precedence over the configuration file, the default value
// is returned if neither is set.
func GetOrDefault[V any](
	config *Config, canonicalProperty string, defaultValue V,
) V {

	if env, found := findEnvProperty(canonicalProperty, defaultValue); found {
		return env
	}

	properties := strings.Split(canonicalProperty, ".")

	element := reflect.ValueOf(*config)
	for _, property := range properties {
		if e, ok := findProperty(element, property); ok {
			element = e
		} else {
			return defaultValue
		}
	}

	if !element.IsZero() &&
		!(element.Kind() == reflect.Ptr && element.IsNil()) {

		if element.Kind() == reflect.Ptr {
			element = element.Elem()
		}

		return element.Convert(reflect.TypeOf(defaultValue)).Interface().(V)
	}
	return defaultValue
}

func findEnvProperty[V any](
	canonicalProperty string, defaultValue V,
) (V, bool) {

	t := reflect.TypeOf(defaultValue)

	envVarName := strings.ToUpper(canonicalProperty)
	envVarName = strings.ReplaceAll(envVarName, "_", "__")
	envVarName = strings.ReplaceAll(envVarName, ".", "_")
	if val, ok := os.LookupEnv(envVarName); ok {
		cv, ok := convertEnvValue(val, t)
		if ok && !cv.IsZero() &&
			!(cv.Kind() == reflect.Ptr && cv.IsNil()) {
			return cv.Interface().(V), true
		}
	}
	return defaultValue, false
}

var durationType = reflect.TypeOf(time.Duration(0))

func convertEnvValue(
	value string, t reflect.Type,
) (reflect.Value, bool) {

	if t == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(d), true
	}

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(value).Convert(t), true
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(b).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(i).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(u).Convert(t), true
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(t, 0, len(parts))
		for _, part := range parts {
			slice = reflect.Append(slice, reflect.ValueOf(strings.TrimSpace(part)).Convert(t.Elem()))
		}
		return slice, true
	}
	return reflect.Value{}, false
}

func findProperty(
	element reflect.Value, property string,
) (reflect.Value, bool) {

	t := element.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}

		if f.Tag.Get("toml") == property {
			return element.Field(i), true
		}
	}
	return reflect.Value{}, false
}
