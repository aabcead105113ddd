/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package measure

import (
	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/expr"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/types"
)

// ApplyRowLevel evaluates row-level measures in definition order and appends
// one numeric column per measure to table. A later measure may reference an
// earlier one.
//
// table is mutated and must be a working copy. A failing measure does not
// stop the others: its column is left absent and the failure is logged and
// returned.
func ApplyRowLevel(table *dataset.Table, measures []types.MeasureDefinition, log logger.Logger) []error {
	if log == nil {
		log = logger.GetDefault()
	}
	var errs []error
	for _, m := range measures {
		values, err := evaluateRowLevel(table, m)
		if err == nil {
			err = table.AddColumn(dataset.Column{Name: m.Name, Kind: dataset.KindNumeric}, values)
			if err != nil {
				err = types.WrapError(types.ErrorTypeRowLevelMeasure, m.Name, err, "measure '%s' not added", m.Name)
			}
		}
		if err != nil {
			log.Warn("skipping row-level measure %s: %v", m.Name, err)
			errs = append(errs, err)
			continue
		}
		log.Debug("row-level measure %s = %s evaluated over %d rows", m.Name, m.Formula, table.Len())
	}
	return errs
}

func evaluateRowLevel(table *dataset.Table, m types.MeasureDefinition) ([]interface{}, error) {
	fail := func(err error, format string, args ...interface{}) error {
		return types.WrapError(types.ErrorTypeRowLevelMeasure, m.Name, err, format, args...)
	}

	if m.Name == "" {
		return nil, types.NewError(types.ErrorTypeRowLevelMeasure, m.Name, "measure with formula '%s' has no name", m.Formula)
	}
	if table.HasColumn(m.Name) {
		return nil, types.NewError(types.ErrorTypeRowLevelMeasure, m.Name, "measure '%s' collides with an existing column", m.Name)
	}

	e, err := expr.Compile(m.Formula)
	if err != nil {
		return nil, fail(err, "measure '%s' has a malformed formula", m.Name)
	}
	if e.HasCalls() {
		return nil, fail(expr.ErrAggregateCall, "measure '%s' contains an aggregate call", m.Name)
	}

	kinds := make(map[string]dataset.Kind)
	for _, f := range e.Fields() {
		col, ok := table.Column(f)
		if !ok {
			return nil, fail(types.ErrUnknownColumn(f), "measure '%s' references an undefined column", m.Name)
		}
		if !col.Kind.IsNumeric() {
			return nil, types.NewError(types.ErrorTypeRowLevelMeasure, m.Name,
				"measure '%s' uses %s column '%s' in arithmetic", m.Name, col.Kind, f)
		}
		kinds[f] = col.Kind
	}

	values := make([]interface{}, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		v, ok, err := e.Evaluate(func(name string) (float64, bool, error) {
			return dataset.ToFloat(row[name], kinds[name])
		})
		if err != nil {
			return nil, fail(err, "measure '%s' failed at row %d", m.Name, i)
		}
		if ok {
			values[i] = dataset.Float(v)
		}
	}
	return values, nil
}
