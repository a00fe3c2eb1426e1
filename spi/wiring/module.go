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
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// PostConstructable services are initialized right after their
// constructor returned
type PostConstructable interface {
	PostConstruct() error
}

// Module is a named set of providers and invocations. Providers are
// bound by the type of their first return value, the parameters of
// constructors and invocations are resolved by type as well.
type Module interface {
	// Provide registers a constructor. It panics if the constructor
	// is not a function returning the service and optionally an error.
	Provide(constructor any)
	// Invoke registers a function called once all modules are
	// registered. It may return an error to fail the container setup.
	Invoke(call any)
	name() string
	providers() []*function
	invocations() []*function
}

func DefineModule(
	name string, definer func(module Module),
) Module {

	m := &module{moduleName: name}
	definer(m)
	return m
}

type module struct {
	moduleName string
	provided   []*function
	invoked    []*function
}

func (m *module) name() string {
	return m.moduleName
}

func (m *module) providers() []*function {
	return m.provided
}

func (m *module) invocations() []*function {
	return m.invoked
}

func (m *module) Provide(
	constructor any,
) {

	f := inspectFunction(constructor)
	switch {
	case f.t.NumOut() == 0 || f.t.NumOut() > 2:
		panic(errors.Errorf("constructor %s must return a service and optionally an error", f))
	case f.t.NumOut() == 2 && f.t.Out(1) != errorType:
		panic(errors.Errorf("second return value of constructor %s must be an error", f))
	case f.t.Out(0) == errorType:
		panic(errors.Errorf("constructor %s must not provide an error", f))
	}
	m.provided = append(m.provided, f)
}

func (m *module) Invoke(
	call any,
) {

	f := inspectFunction(call)
	if f.t.NumOut() > 1 || (f.t.NumOut() == 1 && f.t.Out(0) != errorType) {
		panic(errors.Errorf("invocation %s may only return an error", f))
	}
	m.invoked = append(m.invoked, f)
}

// function is a constructor or invocation prepared for reflective calls
type function struct {
	t reflect.Type
	v reflect.Value
}

func inspectFunction(
	fn any,
) *function {

	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		panic(errors.Errorf("type %T is not a function", fn))
	}
	return &function{t: t, v: reflect.ValueOf(fn)}
}

func (f *function) String() string {
	return f.t.String()
}

// serviceName is the name the service is bound to in the injector
func (f *function) serviceName() string {
	return serviceName(f.t.Out(0))
}

func serviceName(
	t reflect.Type,
) string {

	return t.String()
}

// call resolves the parameters from the injector, calls the function
// and splits its results into value and error. Functions without a
// service result return a nil value.
func (f *function) call(
	injector *do.Injector,
) (any, error) {

	params := make([]reflect.Value, 0, f.t.NumIn())
	for i := 0; i < f.t.NumIn(); i++ {
		paramType := f.t.In(i)
		param, err := do.InvokeNamed[any](injector, serviceName(paramType))
		if err != nil {
			return nil, err
		}
		if param == nil {
			params = append(params, reflect.Zero(paramType))
			continue
		}
		params = append(params, reflect.ValueOf(param))
	}

	results := f.v.Call(params)
	if n := len(results); n > 0 && f.t.Out(n-1) == errorType {
		if err := results[n-1]; !err.IsNil() {
			return nil, err.Interface().(error)
		}
		results = results[:n-1]
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Interface(), nil
}
