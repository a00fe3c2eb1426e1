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

package stats

import (
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/config"
	"github.com/noctarius/catalog-reflector/spi/dictionary"
	"github.com/noctarius/catalog-reflector/spi/version"
	"github.com/segmentio/stats/v4"
	"github.com/segmentio/stats/v4/procstats"
	"github.com/segmentio/stats/v4/prometheus"
	"io"
	"net/http"
	"net/http/httptest"
	"time"
)

const (
	metricQueries        = "queries"
	metricQueryDuration  = "query.duration"
	metricQueryErrors    = "query.errors"
	tagCategory          = "category"
	dictionaryStatPrefix = "dictionary"
)

// Service collects the dictionary query metrics of one run and
// renders them in the prometheus exposition format
type Service struct {
	statsEnabled        bool
	runtimeStatsEnabled bool
	handler             *prometheus.Handler
	engine              *stats.Engine
}

func NewStatsService(
	c *config.Config,
) *Service {

	statsHandler := &prometheus.Handler{
		TrimPrefix: version.BinName,
	}

	return &Service{
		statsEnabled:        config.GetOrDefault(c, config.PropertyStatsEnabled, false),
		runtimeStatsEnabled: config.GetOrDefault(c, config.PropertyStatsRuntime, false),
		handler:             statsHandler,
		engine:              stats.NewEngine(version.BinName, statsHandler),
	}
}

// Enabled returns true if metrics are collected
func (s *Service) Enabled() bool {
	return s.statsEnabled
}

// QueryObserver returns an observer recording count, errors and
// duration of dictionary queries per query category. With stats
// disabled the observer discards everything.
func (s *Service) QueryObserver() dictionary.QueryObserver {
	if !s.statsEnabled {
		return dictionary.NoopObserver
	}

	engine := s.engine.WithPrefix(dictionaryStatPrefix)
	return dictionary.QueryObserverFunc(func(category string, duration time.Duration, err error) {
		tag := stats.T(tagCategory, category)
		engine.Incr(metricQueries, tag)
		engine.Observe(metricQueryDuration, duration, tag)
		if err != nil {
			engine.Incr(metricQueryErrors, tag)
		}
	})
}

// WriteTo writes the collected metrics in the prometheus text format
func (s *Service) WriteTo(
	writer io.Writer,
) (int64, error) {

	if !s.statsEnabled {
		return 0, nil
	}

	if s.runtimeStatsEnabled {
		procstats.NewGoMetricsWith(s.engine).Collect()
	}
	s.engine.Flush()

	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)

	n, err := writer.Write(recorder.Body.Bytes())
	if err != nil {
		return int64(n), errors.Wrap(err, 0)
	}
	return int64(n), nil
}
