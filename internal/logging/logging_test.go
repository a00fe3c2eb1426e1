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

package logging

import (
	"fmt"
	"github.com/gookit/slog"
	spiconfig "github.com/noctarius/catalog-reflector/spi/config"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"os"
	"testing"
)

func Test_New_File_Handler(
	t *testing.T,
) {

	path := fmt.Sprintf("%s/%s", t.TempDir(), lo.RandomString(10, lo.LowerCaseLettersCharset))

	config := spiconfig.LoggerFileConfig{
		Enabled:  lo.ToPtr(true),
		Path:     path,
		Rotate:   lo.ToPtr(true),
		MaxSize:  lo.ToPtr("5MB"),
		Compress: false,
	}

	_, fileHandler, err := newFileHandler(config)
	assert.Nil(t, err)
	assert.NotNil(t, fileHandler)
}

func Test_New_File_Handler_Max_Duration(
	t *testing.T,
) {

	path := fmt.Sprintf("%s/%s", t.TempDir(), lo.RandomString(10, lo.LowerCaseLettersCharset))

	config := spiconfig.LoggerFileConfig{
		Enabled:     lo.ToPtr(true),
		Path:        path,
		Rotate:      lo.ToPtr(true),
		MaxDuration: lo.ToPtr(600),
		Compress:    false,
	}

	_, fileHandler, err := newFileHandler(config)
	assert.Nil(t, err)
	assert.NotNil(t, fileHandler)
}

func Test_New_File_Handler_Cache(
	t *testing.T,
) {

	path := fmt.Sprintf("%s/%s", t.TempDir(), lo.RandomString(10, lo.LowerCaseLettersCharset))

	config := spiconfig.LoggerFileConfig{
		Enabled:  lo.ToPtr(true),
		Path:     path,
		Rotate:   lo.ToPtr(true),
		MaxSize:  lo.ToPtr("5MB"),
		Compress: false,
	}

	cached, _, err := newFileHandler(config)
	assert.Nil(t, err)
	assert.False(t, cached)

	cached, _, err = newFileHandler(config)
	assert.Nil(t, err)
	assert.True(t, cached)
}

func Test_New_File_Handler_Illegal_Max_Size(
	t *testing.T,
) {

	config := spiconfig.LoggerFileConfig{
		Enabled: lo.ToPtr(true),
		Path:    fmt.Sprintf("%s/illegal", os.TempDir()),
		Rotate:  lo.ToPtr(true),
		MaxSize: lo.ToPtr("five megabytes"),
	}

	_, _, err := newFileHandler(config)
	assert.Error(t, err)
}

func Test_Disabled_File_Handler(
	t *testing.T,
) {

	cached, fileHandler, err := newFileHandler(spiconfig.LoggerFileConfig{})
	assert.Nil(t, err)
	assert.False(t, cached)
	assert.Nil(t, fileHandler)
}

func Test_Sub_Logger_Level(
	t *testing.T,
) {

	loggingConfig = spiconfig.LoggerConfig{
		Loggers: map[string]spiconfig.SubLoggerConfig{
			"Inspector": {Level: lo.ToPtr("debug")},
		},
	}
	defer func() {
		loggingConfig = spiconfig.LoggerConfig{}
	}()

	logger, err := NewLogger("Inspector")
	assert.Nil(t, err)
	assert.Equal(t, "Inspector", logger.Name())
	assert.True(t, logger.Enabled(slog.DebugLevel))
	assert.False(t, logger.Enabled(slog.TraceLevel))

	other, err := NewLogger("Other")
	assert.Nil(t, err)
	assert.False(t, other.Enabled(slog.DebugLevel))
	assert.True(t, other.Enabled(slog.WarnLevel))
}

func Test_Name_To_Level(
	t *testing.T,
) {

	assert.Equal(t, slog.ErrorLevel, Name2Level("ERR"))
	assert.Equal(t, VerboseLevel, Name2Level("verbose"))
	assert.Equal(t, slog.InfoLevel, Name2Level("unknown"))
}
