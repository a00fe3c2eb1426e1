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

package reflector

import (
	"context"
	"github.com/noctarius/catalog-reflector/internal/filtering"
	"github.com/noctarius/catalog-reflector/internal/inspector"
	"github.com/noctarius/catalog-reflector/internal/snapshot"
	"github.com/noctarius/catalog-reflector/internal/sqlsession"
	"github.com/noctarius/catalog-reflector/internal/stats"
	"github.com/noctarius/catalog-reflector/spi/config"
	"github.com/noctarius/catalog-reflector/spi/dictionary"
	spiinspector "github.com/noctarius/catalog-reflector/spi/inspector"
	"github.com/noctarius/catalog-reflector/spi/wiring"
)

var StaticModule = wiring.DefineModule(
	"Static", func(module wiring.Module) {
		module.Provide(stats.NewStatsService)
		module.Provide(filtering.NewObjectFilterFromConfig)
		module.Provide(NewReflector)

		module.Provide(func(c *config.Config, statsService *stats.Service) inspector.Settings {
			settings := inspector.SettingsFromConfig(c)
			settings.Observer = statsService.QueryObserver()
			return settings
		})

		module.Provide(func(
			session dictionary.Session, settings inspector.Settings,
		) (spiinspector.Inspector, error) {

			i, err := inspector.NewInspector(session, settings)
			if err != nil {
				return nil, err
			}
			return i, nil
		})
	},
)

var DynamicModule = wiring.DefineModule(
	"Dynamic", func(module wiring.Module) {
		module.Provide(func(c *config.Config) (dictionary.Session, error) {
			var session *sqlsession.Session
			var err error
			if source := config.GetOrDefault(c, config.PropertySnapshotSource, ""); source != "" {
				session, err = snapshot.Open(source)
			} else {
				session, err = sqlsession.Connect(context.Background(), c)
			}
			if err != nil {
				return nil, err
			}
			return session, nil
		})
	},
)

// ConfigModule provides the loaded configuration to all other modules
func ConfigModule(
	c *config.Config,
) wiring.Module {

	return wiring.DefineModule(
		"Config", func(module wiring.Module) {
			module.Provide(func() *config.Config {
				return c
			})
		},
	)
}

// NewContainer wires the reflector and all of its collaborators,
// services are created on first use
func NewContainer(
	c *config.Config,
) (wiring.Container, error) {

	return wiring.NewContainer(ConfigModule(c), StaticModule, DynamicModule)
}
