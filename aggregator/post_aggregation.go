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

package aggregator

import (
	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/expr"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/types"
)

// PostAggregationExpression is an aggregate measure whose calls have been
// rewritten to flattened column references
type PostAggregationExpression struct {
	OutputField       string           // 输出字段名，即度量名称
	Expression        *expr.Expression // 改写后的表达式，如 Profit_sum / Sales_sum
	RequiredAggFields []string         // 依赖的聚合列
	OriginalExpr      string           // 原始公式
}

// NewPostAggregationExpression compiles and rewrites an aggregate measure
func NewPostAggregationExpression(m types.MeasureDefinition) (*PostAggregationExpression, error) {
	compiled, err := expr.Compile(m.Formula)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeMalformedMeasureFormula, m.Name, err, "measure '%s' has a malformed formula", m.Name)
	}
	rewritten, refs, err := expr.RewriteAggregates(compiled)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeMalformedMeasureFormula, m.Name, err, "measure '%s' has a malformed formula", m.Name)
	}
	return &PostAggregationExpression{
		OutputField:       m.Name,
		Expression:        rewritten,
		RequiredAggFields: refs,
		OriginalExpr:      m.Formula,
	}, nil
}

// PostAggregationProcessor evaluates aggregate measures against an aggregated table
type PostAggregationProcessor struct {
	log logger.Logger
}

// NewPostAggregationProcessor creates a new post-aggregation processor
func NewPostAggregationProcessor(log logger.Logger) *PostAggregationProcessor {
	if log == nil {
		log = logger.GetDefault()
	}
	return &PostAggregationProcessor{log: log}
}

// Evaluate appends one numeric column per measure to a copy of table.
//
// A flattened reference that is not a column of table means the aggregation
// step did not compute a dependency; that is returned as the fatal error.
// Other failures, such as an unknown plain identifier or a name collision,
// leave the measure's column absent and are returned in the soft error slice.
func (p *PostAggregationProcessor) Evaluate(table *dataset.Table, measures []types.MeasureDefinition) (*dataset.Table, []error, error) {
	out := table.Clone()
	var soft []error

	for _, m := range measures {
		pae, err := NewPostAggregationExpression(m)
		if err != nil {
			return nil, soft, err
		}
		for _, ref := range pae.RequiredAggFields {
			if !out.HasColumn(ref) {
				return nil, soft, types.NewError(types.ErrorTypeMissingAggregationDependency, m.Name,
					"measure '%s' needs aggregation '%s' which was not computed", m.Name, ref)
			}
		}

		values, err := p.evaluate(out, pae)
		if err == nil {
			err = out.AddColumn(dataset.Column{Name: m.Name, Kind: dataset.KindNumeric}, values)
		}
		if err != nil {
			err = types.WrapError(types.ErrorTypeAggregation, m.Name, err, "aggregate measure '%s' skipped", m.Name)
			p.log.Warn("%v", err)
			soft = append(soft, err)
			continue
		}
		p.log.Debug("aggregate measure %s = %s", m.Name, pae.Expression)
	}
	return out, soft, nil
}

func (p *PostAggregationProcessor) evaluate(table *dataset.Table, pae *PostAggregationExpression) ([]interface{}, error) {
	if table.HasColumn(pae.OutputField) {
		return nil, types.NewError(types.ErrorTypeAggregation, pae.OutputField, "column '%s' already exists", pae.OutputField)
	}
	kinds := make(map[string]dataset.Kind)
	for _, f := range pae.Expression.Fields() {
		col, ok := table.Column(f)
		if !ok {
			return nil, types.ErrUnknownColumn(f)
		}
		if !col.Kind.IsNumeric() {
			return nil, types.NewError(types.ErrorTypeAggregation, f, "%s column '%s' used in arithmetic", col.Kind, f)
		}
		kinds[f] = col.Kind
	}

	values := make([]interface{}, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		v, ok, err := pae.Expression.Evaluate(func(name string) (float64, bool, error) {
			return dataset.ToFloat(row[name], kinds[name])
		})
		if err != nil {
			return nil, err
		}
		if ok {
			values[i] = dataset.Float(v)
		}
	}
	return values, nil
}
