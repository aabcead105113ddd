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
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/types"
)

// AggregationField defines configuration for a single aggregation field
type AggregationField struct {
	InputField    string              // 输入列，如 "Sales"
	AggregateType types.AggregateType // 聚合类型
	OutputAlias   string              // 输出列，默认 "{InputField}_{AggregateType}"
}

// MergeRequests deduplicates (column, function) pairs. Columns keep their
// first-seen order and, within a column, functions keep theirs. Requests
// without a function are ignored.
func MergeRequests(requests ...types.AggregationRequest) []AggregationField {
	var columns []string
	functions := make(map[string][]types.AggregateType)
	seen := make(map[types.AggregationRequest]bool)

	for _, r := range requests {
		if r.Function == "" {
			continue
		}
		fn, ok := types.ParseAggregateType(string(r.Function))
		if !ok {
			continue
		}
		key := types.AggregationRequest{Column: r.Column, Function: fn}
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, exists := functions[r.Column]; !exists {
			columns = append(columns, r.Column)
		}
		functions[r.Column] = append(functions[r.Column], fn)
	}

	fields := make([]AggregationField, 0, len(seen))
	for _, c := range columns {
		for _, fn := range functions[c] {
			fields = append(fields, AggregationField{
				InputField:    c,
				AggregateType: fn,
				OutputAlias:   types.FlattenedName(c, fn),
			})
		}
	}
	return fields
}

// Result is the output of an aggregation
type Result struct {
	Table *dataset.Table
	// Fields are the aggregations actually computed; unknown columns are skipped
	Fields []AggregationField
	// Pivoted is true when the two-key pivot was applied
	Pivoted bool
	// RowKey is the pivot row key column
	RowKey string
	// PivotColumns are the generated value columns, first-seen order
	PivotColumns []string
}

// Option configures a GroupAggregator
type Option func(*GroupAggregator)

// WithParallel runs independent reductions concurrently, at most workers at a time
func WithParallel(workers int) Option {
	return func(ga *GroupAggregator) {
		ga.parallel = true
		ga.workers = workers
	}
}

// WithLogger sets the logger used for skipped fields
func WithLogger(l logger.Logger) Option {
	return func(ga *GroupAggregator) {
		if l != nil {
			ga.log = l
		}
	}
}

// WithPivot enables or disables the two-key pivot (enabled by default)
func WithPivot(enabled bool) Option {
	return func(ga *GroupAggregator) {
		ga.pivot = enabled
	}
}

type GroupAggregator struct {
	groupFields       []string
	aggregationFields []AggregationField
	parallel          bool
	workers           int
	pivot             bool
	log               logger.Logger
}

// NewGroupAggregator creates a new group aggregator. An empty groupFields
// computes one global row.
func NewGroupAggregator(groupFields []string, aggregationFields []AggregationField, opts ...Option) *GroupAggregator {
	fields := make([]AggregationField, len(aggregationFields))
	copy(fields, aggregationFields)
	for i := range fields {
		if fields[i].OutputAlias == "" {
			fields[i].OutputAlias = types.FlattenedName(fields[i].InputField, fields[i].AggregateType)
		}
	}
	ga := &GroupAggregator{
		groupFields:       groupFields,
		aggregationFields: fields,
		pivot:             true,
		log:               logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(ga)
	}
	return ga
}

// partitions holds row indices per group key in first-seen order
type partitions struct {
	keys    []dataset.GroupKey
	members map[dataset.GroupKey][]int
}

func (ga *GroupAggregator) partition(table *dataset.Table) partitions {
	p := partitions{members: make(map[dataset.GroupKey][]int)}
	if len(ga.groupFields) == 0 {
		all := make([]int, table.Len())
		for i := range all {
			all[i] = i
		}
		p.keys = []dataset.GroupKey{""}
		p.members[""] = all
		return p
	}
	for i := 0; i < table.Len(); i++ {
		key := dataset.KeyOf(table.Row(i), ga.groupFields)
		if _, exists := p.members[key]; !exists {
			p.keys = append(p.keys, key)
		}
		p.members[key] = append(p.members[key], i)
	}
	return p
}

// Aggregate partitions table by the group fields and reduces every field per
// partition. Missing group values form their own partition.
func (ga *GroupAggregator) Aggregate(table *dataset.Table) (*Result, error) {
	groupColumns := make([]dataset.Column, 0, len(ga.groupFields))
	for _, g := range ga.groupFields {
		col, ok := table.Column(g)
		if !ok {
			return nil, types.ErrUnknownColumn(g)
		}
		groupColumns = append(groupColumns, col)
	}

	fields := make([]AggregationField, 0, len(ga.aggregationFields))
	sources := make([]dataset.Column, 0, len(ga.aggregationFields))
	for _, f := range ga.aggregationFields {
		col, ok := table.Column(f.InputField)
		if !ok {
			ga.log.Warn("aggregation %s(%s) skipped: column not found", f.AggregateType, f.InputField)
			continue
		}
		if requiresNumeric(f.AggregateType) && !col.Kind.IsNumeric() {
			return nil, types.NewError(types.ErrorTypeAggregation, f.InputField,
				"cannot compute %s over %s column '%s'", f.AggregateType, col.Kind, f.InputField)
		}
		fields = append(fields, f)
		sources = append(sources, col)
	}

	parts := ga.partition(table)
	results := make([][]interface{}, len(fields))

	reduce := func(j int) error {
		out, err := reduceField(table, fields[j], sources[j].Kind, parts)
		if err != nil {
			return err
		}
		results[j] = out
		return nil
	}

	if ga.parallel && len(fields) > 1 {
		var g errgroup.Group
		if ga.workers > 0 {
			g.SetLimit(ga.workers)
		}
		for j := range fields {
			j := j
			g.Go(func() error { return reduce(j) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for j := range fields {
			if err := reduce(j); err != nil {
				return nil, err
			}
		}
	}

	columns := make([]dataset.Column, 0, len(groupColumns)+len(fields))
	columns = append(columns, groupColumns...)
	for j, f := range fields {
		columns = append(columns, dataset.Column{Name: f.OutputAlias, Kind: resultKind(f.AggregateType, sources[j].Kind)})
	}

	rows := make([]dataset.Row, len(parts.keys))
	for p, key := range parts.keys {
		row := make(dataset.Row, len(columns))
		if len(ga.groupFields) > 0 {
			first := parts.members[key][0]
			for _, g := range ga.groupFields {
				row[g] = table.Value(first, g)
			}
		}
		for j, f := range fields {
			row[f.OutputAlias] = results[j][p]
		}
		rows[p] = row
	}

	aggregated, err := dataset.NewTable(columns, rows)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeAggregation, "", err, "cannot build aggregated table")
	}
	ga.log.Debug("aggregated %d rows into %d groups, %d fields", table.Len(), len(parts.keys), len(fields))

	result := &Result{Table: aggregated, Fields: fields}
	if ga.pivot && len(ga.groupFields) == 2 && len(fields) == 1 {
		return pivot(result, ga.groupFields[0], ga.groupFields[1], fields[0].OutputAlias, ga.log), nil
	}
	return result, nil
}

// reduceField computes one (column, function) pair for every partition
func reduceField(table *dataset.Table, f AggregationField, kind dataset.Kind, parts partitions) ([]interface{}, error) {
	proto, err := CreateBuiltinAggregator(f.AggregateType)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeAggregation, f.InputField, err, "cannot aggregate '%s'", f.InputField)
	}
	numeric := requiresNumeric(f.AggregateType)

	out := make([]interface{}, len(parts.keys))
	for p, key := range parts.keys {
		agg := proto.New()
		for _, i := range parts.members[key] {
			v := table.Value(i, f.InputField)
			if dataset.IsMissing(v) {
				continue
			}
			if numeric {
				num, ok, err := dataset.ToFloat(v, kind)
				if err != nil {
					return nil, types.WrapError(types.ErrorTypeAggregation, f.InputField, err,
						"cannot compute %s over '%s'", f.AggregateType, f.InputField)
				}
				if !ok {
					continue
				}
				agg.Add(num)
				continue
			}
			agg.Add(v)
		}
		out[p] = agg.Result()
	}
	return out, nil
}

// pivot reshapes a two-key aggregation: one row per first-key value, one
// column per second-key value. Absent and missing cells are 0 when the value
// column is numeric and missing otherwise.
func pivot(r *Result, rowKey, columnKey, valueField string, log logger.Logger) *Result {
	src := r.Table
	keyCol, _ := src.Column(rowKey)
	valueCol, _ := src.Column(valueField)

	var rowOrder []dataset.GroupKey
	rowValues := make(map[dataset.GroupKey]interface{})
	var pivotColumns []string
	// 第二分组键的取值 -> 输出列名
	names := map[string]string{}
	taken := map[string]bool{rowKey: true}
	cells := make(map[dataset.GroupKey]map[string]interface{})

	for i := 0; i < src.Len(); i++ {
		row := src.Row(i)
		rk := dataset.KeyOf(row, []string{rowKey})
		if _, exists := cells[rk]; !exists {
			rowOrder = append(rowOrder, rk)
			rowValues[rk] = row[rowKey]
			cells[rk] = make(map[string]interface{})
		}
		header := dataset.FormatValue(row[columnKey])
		name, seen := names[header]
		if !seen {
			name = header
			for n := 1; taken[name]; n++ {
				name = fmt.Sprintf("%s_%d", header, n)
			}
			if name != header {
				log.Warn("pivot column '%s' renamed to '%s'", header, name)
			}
			names[header] = name
			taken[name] = true
			pivotColumns = append(pivotColumns, name)
		}
		cells[rk][name] = row[valueField]
	}

	var fill interface{}
	if valueCol.Kind == dataset.KindNumeric {
		fill = 0.0
	}

	columns := []dataset.Column{keyCol}
	for _, h := range pivotColumns {
		columns = append(columns, dataset.Column{Name: h, Kind: valueCol.Kind})
	}
	rows := make([]dataset.Row, 0, len(rowOrder))
	for _, rk := range rowOrder {
		row := dataset.Row{rowKey: rowValues[rk]}
		for _, h := range pivotColumns {
			v, ok := cells[rk][h]
			if !ok || dataset.IsMissing(v) {
				v = fill
			}
			row[h] = v
		}
		rows = append(rows, row)
	}

	return &Result{
		Table:        dataset.MustNewTable(columns, rows),
		Fields:       r.Fields,
		Pivoted:      true,
		RowKey:       rowKey,
		PivotColumns: pivotColumns,
	}
}
