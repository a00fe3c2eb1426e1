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

package containers

import (
	"context"
	"fmt"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/internal/logging"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"time"
)

const (
	oracleImage          = "gvenzl/oracle-free:23-slim-faststart"
	oraclePort           = "1521/tcp"
	oracleServiceName    = "FREEPDB1"
	oracleSystemPassword = "catalog"
	OracleUser           = "scott"
	OraclePassword       = "tiger"
)

// OracleConnection carries everything needed to connect to the
// application user of a containerized Oracle database
type OracleConnection struct {
	Host     string
	Port     int
	User     string
	Password string
}

// ConnectString returns the easy connect string of the pluggable
// database
func (c OracleConnection) ConnectString() string {
	return fmt.Sprintf("%s:%d/%s", c.Host, c.Port, oracleServiceName)
}

// SetupOracleContainer starts an Oracle Database Free container with
// an application user, OracleUser, as default schema
func SetupOracleContainer() (testcontainers.Container, OracleConnection, error) {
	ctx := context.Background()

	oracleLogger, err := logging.NewLogger("testcontainers-oracle")
	if err != nil {
		return nil, OracleConnection{}, err
	}

	request := testcontainers.ContainerRequest{
		Image:        oracleImage,
		ExposedPorts: []string{oraclePort},
		Env: map[string]string{
			"ORACLE_PASSWORD":   oracleSystemPassword,
			"APP_USER":          OracleUser,
			"APP_USER_PASSWORD": OraclePassword,
		},
		WaitingFor: wait.ForLog("DATABASE IS READY TO USE!").WithStartupTimeout(5 * time.Minute),
		LogConsumerCfg: &testcontainers.LogConsumerConfig{
			Consumers: []testcontainers.LogConsumer{newLogConsumer(oracleLogger)},
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: request,
		Started:          true,
	})
	if err != nil {
		return nil, OracleConnection{}, errors.Wrap(err, 0)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, OracleConnection{}, errors.Wrap(err, 0)
	}

	port, err := container.MappedPort(ctx, oraclePort)
	if err != nil {
		return nil, OracleConnection{}, errors.Wrap(err, 0)
	}

	return container, OracleConnection{
		Host:     host,
		Port:     port.Int(),
		User:     OracleUser,
		Password: OraclePassword,
	}, nil
}
