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

package dataquery

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rulego/dataquery/aggregator"
	"github.com/rulego/dataquery/condition"
	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/loader"
	"github.com/rulego/dataquery/logger"
	"github.com/rulego/dataquery/measure"
	"github.com/rulego/dataquery/operator"
	"github.com/rulego/dataquery/profiler"
	"github.com/rulego/dataquery/transform"
	"github.com/rulego/dataquery/types"
)

// Engine 是查询执行引擎。
// 构造后不再修改内部状态，同一个 Engine 可以被多个 goroutine 并发调用。
//
// 使用示例:
//
//	engine := dataquery.New(dataquery.WithDefaultLimit(100))
//	result, err := engine.Execute(table, types.QueryRequest{
//		GroupBy:      []string{"Region"},
//		Aggregations: []types.AggregationRequest{{Column: "Amount", Function: types.Sum}},
//	})
type Engine struct {
	config        types.Config
	classifier    measure.Classifier
	transformers  transform.Chain
	loaderOptions []loader.Option
	log           logger.Logger
}

// New 创建查询引擎
func New(options ...Option) *Engine {
	e := &Engine{
		config:     types.NewConfig(),
		classifier: measure.DefaultClassifier(),
		log:        logger.GetDefault(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() types.Config {
	return e.config
}

// ExecuteFile loads a CSV or Parquet file and runs req against it
func (e *Engine) ExecuteFile(path string, req types.QueryRequest) (*types.QueryResult, error) {
	table, err := loader.Load(path, e.loadOptions()...)
	if err != nil {
		return nil, err
	}
	return e.Execute(table, req)
}

// Preview returns the first limit rows of a file with every column.
// limit <= 0 uses the configured preview size.
func (e *Engine) Preview(path string, limit int) (*types.QueryResult, error) {
	table, err := loader.Preview(path, limit, e.loadOptions()...)
	if err != nil {
		return nil, err
	}
	return toResult(table), nil
}

// Profile loads a file and summarises its columns
func (e *Engine) Profile(path string) (*profiler.DatasetProfile, error) {
	table, err := loader.Load(path, e.loadOptions()...)
	if err != nil {
		return nil, err
	}
	return profiler.Profile(table), nil
}

func (e *Engine) loadOptions() []loader.Option {
	opts := []loader.Option{loader.WithConfig(e.config.LoaderConfig), loader.WithLogger(e.log)}
	return append(opts, e.loaderOptions...)
}

// query carries the state of one Execute call through the pipeline
type query struct {
	id  string
	req types.QueryRequest
	log logger.Logger

	table *dataset.Table

	// 聚合度量，按名称索引
	aggregateMeasures map[string]types.MeasureDefinition
	// 本次请求实际计算的聚合度量
	activeMeasures []types.MeasureDefinition
	merged         []aggregator.AggregationField
	aggregated     *aggregator.Result
}

// Execute runs a query against table. table is never modified.
//
// Stages: transformations, row-level measures, filters, aggregate measure
// dependency resolution, merge, then either the histogram branch or
// aggregation followed by aggregate measures, projection, sort and limit.
func (e *Engine) Execute(table *dataset.Table, req types.QueryRequest) (*types.QueryResult, error) {
	if table == nil {
		return nil, types.NewError(types.ErrorTypeInvalidQuery, "", "no table to query")
	}
	q := &query{
		id:  uuid.NewString(),
		req: req,
	}
	q.log = logger.WithPrefix(e.log, fmt.Sprintf("[query %s] ", q.id))
	start := time.Now()
	q.log.Debug("start: %d rows, %d filters, group by %v, %d aggregations, %d measures",
		table.Len(), len(req.Filters), req.GroupBy, len(req.Aggregations), len(req.Measures))

	result, err := e.execute(q, table)
	if err != nil {
		q.log.Debug("failed after %s: %v", time.Since(start), err)
		return nil, err
	}
	q.log.Debug("done in %s: %d rows", time.Since(start), result.TotalRowCount)
	return result, nil
}

func (e *Engine) execute(q *query, source *dataset.Table) (*types.QueryResult, error) {
	// 工作副本，后续新增列都写在副本上
	q.table = source.Clone()

	if len(e.transformers) > 0 {
		transformed, err := e.transformers.Transform(q.table)
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
		q.table = transformed
	}

	rowLevel, aggregate := measure.Classify(e.classifier, q.req.Measures)
	q.aggregateMeasures = make(map[string]types.MeasureDefinition, len(aggregate))
	for _, m := range aggregate {
		q.aggregateMeasures[m.Name] = m
	}
	if len(rowLevel) > 0 {
		measure.ApplyRowLevel(q.table, rowLevel, q.log)
	}

	filtered, err := condition.Apply(q.table, q.req.Filters)
	if err != nil {
		return nil, err
	}
	q.log.Debug("filters kept %d of %d rows", filtered.Len(), q.table.Len())
	q.table = filtered

	if err := e.resolve(q); err != nil {
		return nil, err
	}

	if q.req.IsHistogram && len(q.merged) > 0 {
		return e.histogram(q)
	}

	if len(q.req.GroupBy) > 0 || len(q.merged) > 0 {
		opts := []aggregator.Option{
			aggregator.WithLogger(q.log),
			// 聚合度量依赖扁平列，透视后这些列不存在
			aggregator.WithPivot(len(q.activeMeasures) == 0),
		}
		if e.config.AggregationConfig.Parallel {
			opts = append(opts, aggregator.WithParallel(e.config.AggregationConfig.Workers()))
		}
		q.aggregated, err = aggregator.NewGroupAggregator(q.req.GroupBy, q.merged, opts...).Aggregate(q.table)
		if err != nil {
			return nil, err
		}
		q.table = q.aggregated.Table

		if len(q.activeMeasures) > 0 {
			out, _, err := aggregator.NewPostAggregationProcessor(q.log).Evaluate(q.table, q.activeMeasures)
			if err != nil {
				return nil, err
			}
			q.table = out
		}
	}

	shaped, err := operator.Shape(q.log, e.projection(q), operator.SortFields(q.req.SortBy),
		e.config.EffectiveLimit(q.req.Limit)).Apply(q.table)
	if err != nil {
		return nil, err
	}
	return toResult(shaped), nil
}

// resolve validates the aggregation entries, picks the aggregate measures the
// request asks for and merges their dependencies with the raw aggregations
func (e *Engine) resolve(q *query) error {
	var requests []types.AggregationRequest
	picked := make(map[string]bool)

	for _, a := range q.req.Aggregations {
		if m, ok := q.aggregateMeasures[a.Column]; ok {
			if !picked[m.Name] {
				picked[m.Name] = true
				q.activeMeasures = append(q.activeMeasures, m)
			}
			continue
		}
		if a.Function == "" {
			return types.NewError(types.ErrorTypeInvalidQuery, a.Column, "aggregation on '%s' has no function", a.Column)
		}
		fn, ok := types.ParseAggregateType(string(a.Function))
		if !ok {
			return types.NewError(types.ErrorTypeInvalidQuery, a.Column,
				"unsupported aggregate function '%s' on '%s'", a.Function, a.Column)
		}
		requests = append(requests, types.AggregationRequest{Column: a.Column, Function: fn})
	}

	active := q.activeMeasures[:0]
	for _, m := range q.activeMeasures {
		deps, err := measure.ResolveMeasure(m)
		if err != nil {
			return err
		}
		if reason := unusable(q.table, deps); reason != "" {
			q.log.Warn("aggregate measure %s dropped: %s", m.Name, reason)
			continue
		}
		for _, d := range deps {
			requests = append(requests, d.Request())
		}
		active = append(active, m)
	}
	q.activeMeasures = active

	q.merged = aggregator.MergeRequests(requests...)
	q.log.Debug("merged aggregations: %d fields, %d aggregate measures", len(q.merged), len(q.activeMeasures))
	return nil
}

// unusable explains why deps cannot be aggregated over table, or returns ""
func unusable(table *dataset.Table, deps []measure.Dependency) string {
	for _, d := range deps {
		col, ok := table.Column(d.Column)
		if !ok {
			return fmt.Sprintf("column '%s' not found", d.Column)
		}
		if !aggregator.Accepts(d.Function, col.Kind) {
			return fmt.Sprintf("cannot compute %s over %s column '%s'", d.Function, col.Kind, d.Column)
		}
	}
	return ""
}

// histogram bins the column of the first merged aggregation; only the limit
// applies to its output
func (e *Engine) histogram(q *query) (*types.QueryResult, error) {
	column := q.merged[0].InputField
	bins := e.config.EffectiveBins(q.req.HistogramBins)
	hist, err := aggregator.Bin(q.table, column, bins)
	if err != nil {
		return nil, err
	}
	q.log.Debug("histogram of %s with %d bins", column, bins)
	limited, err := (&operator.LimitOp{BaseOp: &operator.BaseOp{Log: q.log}, Limit: e.config.EffectiveLimit(q.req.Limit)}).Apply(hist)
	if err != nil {
		return nil, err
	}
	return toResult(limited), nil
}

// projection lists the output columns; nil keeps every column
func (e *Engine) projection(q *query) []string {
	if q.aggregated == nil {
		return nil
	}
	if q.aggregated.Pivoted {
		return append([]string{q.aggregated.RowKey}, q.aggregated.PivotColumns...)
	}
	fields := make([]string, 0, len(q.req.GroupBy)+len(q.req.Aggregations))
	fields = append(fields, q.req.GroupBy...)
	for _, a := range q.req.Aggregations {
		if _, ok := q.aggregateMeasures[a.Column]; ok {
			fields = append(fields, a.Column)
			continue
		}
		fn, _ := types.ParseAggregateType(string(a.Function))
		fields = append(fields, types.FlattenedName(a.Column, fn))
	}
	return fields
}

func toResult(table *dataset.Table) *types.QueryResult {
	return &types.QueryResult{
		Rows:          table.Records(),
		TotalRowCount: table.Len(),
		Columns:       table.ColumnNames(),
	}
}
