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

package wiring

import (
	"github.com/go-errors/errors"
	"github.com/samber/do"
	"github.com/samber/lo"
	"io"
	"reflect"
	"sync"
)

// Container hands out the services provided by its modules.
// Services are created lazily on first request.
type Container interface {
	// Service looks up the service matching the type service points
	// to and stores it in the pointer
	Service(service any) error
	// Shutdown shuts down all created services implementing
	// do.Shutdownable, and closes all created services implementing
	// io.Closer, in reverse order of creation
	Shutdown() error
}

// NewContainer registers the providers of all modules, a later module
// overrides providers of the same type, and runs the invocations
func NewContainer(
	modules ...Module,
) (Container, error) {

	c := &container{
		injector: do.New(),
	}

	for _, module := range modules {
		for _, provider := range module.providers() {
			c.bind(provider)
		}
	}

	for _, module := range modules {
		for _, invocation := range module.invocations() {
			if _, err := invocation.call(c.injector); err != nil {
				return nil, errors.Errorf("module %s failed invoking %s => %s", module.name(), invocation, err)
			}
		}
	}
	return c, nil
}

type container struct {
	injector *do.Injector
	mutex    sync.Mutex
	closers  []io.Closer
}

func (c *container) bind(
	provider *function,
) {

	name := provider.serviceName()
	construct := func(injector *do.Injector) (any, error) {
		value, err := provider.call(injector)
		if err != nil {
			return nil, err
		}
		if p, ok := value.(PostConstructable); ok {
			if err := p.PostConstruct(); err != nil {
				return nil, err
			}
		}
		c.track(value)
		return value, nil
	}

	if lo.Contains(c.injector.ListProvidedServices(), name) {
		do.OverrideNamed(c.injector, name, construct)
	} else {
		do.ProvideNamed(c.injector, name, construct)
	}
}

// track remembers closable services which the injector does not
// shut down itself
func (c *container) track(
	value any,
) {

	if _, ok := value.(do.Shutdownable); ok {
		return
	}
	if closer, ok := value.(io.Closer); ok {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		c.closers = append(c.closers, closer)
	}
}

func (c *container) Service(
	service any,
) error {

	serviceValue := reflect.ValueOf(service)
	if serviceValue.Kind() != reflect.Pointer || serviceValue.IsNil() {
		return errors.Errorf("service target must be a non-nil pointer, got %T", service)
	}

	serviceValue = serviceValue.Elem()
	serviceInstance, err := do.InvokeNamed[any](c.injector, serviceName(serviceValue.Type()))
	if err != nil {
		return err
	}
	if serviceInstance != nil {
		serviceValue.Set(reflect.ValueOf(serviceInstance))
	}
	return nil
}

func (c *container) Shutdown() error {
	shutdownErr := c.injector.Shutdown()

	c.mutex.Lock()
	closers := lo.Reverse(c.closers)
	c.closers = nil
	c.mutex.Unlock()

	for _, closer := range closers {
		if err := closer.Close(); err != nil && shutdownErr == nil {
			shutdownErr = errors.Wrap(err, 0)
		}
	}
	return shutdownErr
}

// Lookup is the typed variant of Container.Service
func Lookup[T any](
	container Container,
) (T, error) {

	var service T
	if err := container.Service(&service); err != nil {
		return service, err
	}
	return service, nil
}
