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

// Package profiler summarises the columns of a table: missing values,
// cardinality, sample values, numeric statistics and the most frequent text values.
package profiler

import (
	"math"
	"sort"

	"github.com/rulego/dataquery/aggregator"
	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

const (
	// SampleSize 样本值个数
	SampleSize = 5
	// TopValuesSize 高频值个数
	TopValuesSize = 10
)

// ValueCount is one entry of a column's top values
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnProfile describes one column. Numeric statistics are set for numeric
// columns, TopValues for text columns.
type ColumnProfile struct {
	Name              string        `json:"name"`
	Kind              string        `json:"dtype"`
	MissingCount      int           `json:"missing_count"`
	MissingPercentage float64       `json:"missing_percentage"`
	UniqueCount       int           `json:"unique_count"`
	SampleValues      []interface{} `json:"sample_values"`
	IsDate            bool          `json:"is_date,omitempty"`

	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Q25    *float64 `json:"q25,omitempty"`
	Q75    *float64 `json:"q75,omitempty"`

	TopValues []ValueCount `json:"top_values,omitempty"`
}

// DatasetProfile describes a whole table
type DatasetProfile struct {
	TotalRows          int              `json:"total_rows"`
	TotalColumns       int              `json:"total_columns"`
	Columns            []*ColumnProfile `json:"columns"`
	NumericColumns     []string         `json:"numeric_columns"`
	CategoricalColumns []string         `json:"categorical_columns"`
	DateColumns        []string         `json:"date_columns"`
}

// Profile computes a DatasetProfile. Booleans are reported as categorical.
func Profile(table *dataset.Table) *DatasetProfile {
	p := &DatasetProfile{
		TotalRows:          table.Len(),
		TotalColumns:       len(table.Columns()),
		Columns:            make([]*ColumnProfile, 0, len(table.Columns())),
		NumericColumns:     []string{},
		CategoricalColumns: []string{},
		DateColumns:        []string{},
	}
	for _, col := range table.Columns() {
		cp := ProfileColumn(table, col)
		p.Columns = append(p.Columns, cp)
		switch col.Kind {
		case dataset.KindNumeric:
			p.NumericColumns = append(p.NumericColumns, col.Name)
		case dataset.KindTemporal:
			p.DateColumns = append(p.DateColumns, col.Name)
		default:
			p.CategoricalColumns = append(p.CategoricalColumns, col.Name)
		}
	}
	return p
}

// ProfileColumn profiles a single column
func ProfileColumn(table *dataset.Table, col dataset.Column) *ColumnProfile {
	cp := &ColumnProfile{
		Name:         col.Name,
		Kind:         col.Kind.String(),
		IsDate:       col.Kind == dataset.KindTemporal,
		SampleValues: []interface{}{},
	}

	counts := make(map[string]int)
	var order []string
	var present []interface{}
	for _, v := range table.Values(col.Name) {
		if dataset.IsMissing(v) {
			cp.MissingCount++
			continue
		}
		present = append(present, v)
		if len(cp.SampleValues) < SampleSize {
			cp.SampleValues = append(cp.SampleValues, v)
		}
		key := dataset.FormatValue(v)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	cp.UniqueCount = len(counts)
	if n := table.Len(); n > 0 {
		cp.MissingPercentage = float64(cp.MissingCount) / float64(n) * 100
	}

	switch col.Kind {
	case dataset.KindNumeric:
		numericStats(cp, present)
	case dataset.KindText:
		cp.TopValues = topValues(order, counts, TopValuesSize)
	}
	return cp
}

func numericStats(cp *ColumnProfile, present []interface{}) {
	if len(present) == 0 {
		return
	}
	values := make([]float64, 0, len(present))
	for _, v := range present {
		if f, ok, err := dataset.ToFloat(v, dataset.KindNumeric); err == nil && ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return
	}

	cp.Mean = reduce(types.Avg, values)
	cp.Median = reduce(types.Median, values)
	cp.Std = reduce(types.Std, values)
	cp.Min = reduce(types.Min, values)
	cp.Max = reduce(types.Max, values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	q25, q75 := quantile(sorted, 0.25), quantile(sorted, 0.75)
	cp.Q25, cp.Q75 = &q25, &q75
}

// reduce runs one builtin reducer; nil when it has no result
func reduce(t types.AggregateType, values []float64) *float64 {
	agg, err := aggregator.CreateBuiltinAggregator(t)
	if err != nil {
		return nil
	}
	agg = agg.New()
	for _, v := range values {
		agg.Add(v)
	}
	f, ok := agg.Result().(float64)
	if !ok || math.IsNaN(f) {
		return nil
	}
	return &f
}

// quantile interpolates linearly between the closest ranks
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// topValues orders by count descending, ties by first appearance
func topValues(order []string, counts map[string]int, n int) []ValueCount {
	out := make([]ValueCount, 0, len(order))
	for _, k := range order {
		out = append(out, ValueCount{Value: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
