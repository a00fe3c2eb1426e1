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

package filtering

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-errors/errors"
	"github.com/noctarius/catalog-reflector/spi/catalog"
	"github.com/noctarius/catalog-reflector/spi/config"
)

// ObjectFilter selects the objects a reflection run reports
type ObjectFilter interface {
	Accept(key catalog.ObjectKey, kind catalog.ObjectKind) (bool, error)
}

type objectFilterFunc func(key catalog.ObjectKey, kind catalog.ObjectKind) (bool, error)

func (off objectFilterFunc) Accept(
	key catalog.ObjectKey, kind catalog.ObjectKind,
) (bool, error) {

	return off(key, kind)
}

// ObjectEnv is the environment filter conditions are evaluated in
type ObjectEnv struct {
	Schema string `expr:"schema"`
	Name   string `expr:"name"`
	Kind   string `expr:"kind"`
}

var AcceptAll objectFilterFunc = func(_ catalog.ObjectKey, _ catalog.ObjectKind) (bool, error) {
	return true, nil
}

// NewObjectFilter compiles the filter condition of the configuration.
// A matching condition yields the default value (true unless
// configured), a non-matching condition its negation.
func NewObjectFilter(
	filterConfig config.ObjectFilterConfig,
) (ObjectFilter, error) {

	if filterConfig.Condition == "" {
		return AcceptAll, nil
	}

	defaultValue := true
	if filterConfig.DefaultValue != nil {
		defaultValue = *filterConfig.DefaultValue
	}

	program, err := expr.Compile(filterConfig.Condition, expr.Env(ObjectEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.Errorf("illegal filter condition «%s» => %s", filterConfig.Condition, err.Error())
	}

	return &objectFilter{
		defaultValue: defaultValue,
		condition:    filterConfig.Condition,
		program:      program,
		vm:           &vm.VM{},
	}, nil
}

type objectFilter struct {
	defaultValue bool
	condition    string
	program      *vm.Program
	vm           *vm.VM
}

func (f *objectFilter) Accept(
	key catalog.ObjectKey, kind catalog.ObjectKind,
) (bool, error) {

	result, err := f.vm.Run(f.program, ObjectEnv{
		Schema: key.Schema,
		Name:   key.Name,
		Kind:   kind.String(),
	})
	if err != nil {
		return false, errors.Wrap(err, 0)
	}

	r, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("result of filter «%s» isn't a boolean", f.condition)
	}

	if r {
		return f.defaultValue, nil
	}
	return !f.defaultValue, nil
}

// NewObjectFilterFromConfig creates the object filter from the
// reflection.filter properties, environment variables included
func NewObjectFilterFromConfig(
	c *config.Config,
) (ObjectFilter, error) {

	filterConfig := config.ObjectFilterConfig{
		Condition: config.GetOrDefault(c, config.PropertyReflectionFilterCondition, ""),
	}
	if c.Reflection.Filter.DefaultValue != nil {
		filterConfig.DefaultValue = c.Reflection.Filter.DefaultValue
	}
	defaultValue := config.GetOrDefault(c, config.PropertyReflectionFilterDefault, true)
	filterConfig.DefaultValue = &defaultValue
	return NewObjectFilter(filterConfig)
}
