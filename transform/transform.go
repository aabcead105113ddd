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

package transform

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rulego/dataquery/dataset"
)

// Transformer rewrites a table before it is queried. Implementations return a
// new table and leave the input untouched.
type Transformer interface {
	Transform(table *dataset.Table) (*dataset.Table, error)
}

// Func adapts a function to Transformer
type Func func(table *dataset.Table) (*dataset.Table, error)

func (f Func) Transform(table *dataset.Table) (*dataset.Table, error) {
	return f(table)
}

// Chain applies transformers in order
type Chain []Transformer

func (c Chain) Transform(table *dataset.Table) (*dataset.Table, error) {
	for i, t := range c {
		if t == nil {
			continue
		}
		out, err := t.Transform(table)
		if err != nil {
			return nil, fmt.Errorf("transformer %d: %w", i, err)
		}
		table = out
	}
	return table, nil
}

// Factory builds a transformer from a column argument, e.g. "time_intelligence:OrderDate"
type Factory func(arg string) (Transformer, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{
		"sanitize": func(string) (Transformer, error) {
			return SanitizeColumnNames(), nil
		},
		"time_intelligence": func(arg string) (Transformer, error) {
			if arg == "" {
				return nil, fmt.Errorf("time_intelligence needs a column")
			}
			return TimeIntelligence(arg), nil
		},
	}
)

// Register adds a named transformer factory
func Register(name string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()
	name = strings.ToLower(name)
	if _, exists := factories[name]; exists {
		return fmt.Errorf("transformer %s already registered", name)
	}
	factories[name] = f
	return nil
}

// Parse builds transformers from specs of the form "name" or "name:arg"
func Parse(specs ...string) (Chain, error) {
	mu.RLock()
	defer mu.RUnlock()
	chain := make(Chain, 0, len(specs))
	for _, spec := range specs {
		name, arg, _ := strings.Cut(spec, ":")
		f, ok := factories[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown transformer %q", name)
		}
		t, err := f(strings.TrimSpace(arg))
		if err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
	return chain, nil
}

// withColumns returns a copy of table with cols set, replacing same-named
// columns in place and appending the rest
func withColumns(table *dataset.Table, cols []dataset.Column, values [][]interface{}) (*dataset.Table, error) {
	columns := table.Columns()
	for _, c := range cols {
		replaced := false
		for i := range columns {
			if columns[i].Name == c.Name {
				columns[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			columns = append(columns, c)
		}
	}
	rows := make([]dataset.Row, table.Len())
	for i := range rows {
		row := table.Row(i).Clone()
		for j, c := range cols {
			row[c.Name] = values[j][i]
		}
		rows[i] = row
	}
	return dataset.NewTable(columns, rows)
}
