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

package operator

import (
	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/logger"
)

// Operator is one result shaping step
type Operator interface {
	Apply(table *dataset.Table) (*dataset.Table, error)
}

type BaseOp struct {
	Log logger.Logger
}

func (o *BaseOp) logger() logger.Logger {
	if o == nil || o.Log == nil {
		return logger.GetDefault()
	}
	return o.Log
}

// Pipeline applies operators in order
type Pipeline []Operator

func (p Pipeline) Apply(table *dataset.Table) (*dataset.Table, error) {
	var err error
	for _, op := range p {
		if op == nil {
			continue
		}
		if table, err = op.Apply(table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Shape builds the projection, sort and limit pipeline. A nil projection
// keeps every column.
func Shape(log logger.Logger, projection []string, sortBy []SortField, limit int) Pipeline {
	base := &BaseOp{Log: log}
	var p Pipeline
	if projection != nil {
		p = append(p, &ProjectOp{BaseOp: base, Fields: projection})
	}
	if len(sortBy) > 0 {
		p = append(p, &SortOp{BaseOp: base, Keys: sortBy})
	}
	p = append(p, &LimitOp{BaseOp: base, Limit: limit})
	return p
}
