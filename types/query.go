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

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AggregateType 聚合函数类型
type AggregateType string

const (
	Sum    AggregateType = "sum"
	Avg    AggregateType = "avg"
	Count  AggregateType = "count"
	Min    AggregateType = "min"
	Max    AggregateType = "max"
	Median AggregateType = "median"
	Std    AggregateType = "std"
)

// AggregateTypes lists every supported aggregate function
var AggregateTypes = []AggregateType{Sum, Avg, Count, Min, Max, Median, Std}

// aggregateAliases maps internal or alternative spellings onto the external names
var aggregateAliases = map[string]AggregateType{
	"sum":    Sum,
	"avg":    Avg,
	"mean":   Avg,
	"count":  Count,
	"min":    Min,
	"max":    Max,
	"median": Median,
	"std":    Std,
	"stddev": Std,
}

// ParseAggregateType resolves a function name case-insensitively.
// "mean" maps to avg and "stddev" to std.
func ParseAggregateType(name string) (AggregateType, bool) {
	t, ok := aggregateAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// AggregateFunctionNames returns every accepted spelling, aliases included
func AggregateFunctionNames() []string {
	names := make([]string, 0, len(aggregateAliases))
	for name := range aggregateAliases {
		names = append(names, name)
	}
	return names
}

// UnmarshalJSON accepts any spelling ParseAggregateType accepts
func (t *AggregateType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		// measure entries may omit the function
		*t = ""
		return nil
	}
	parsed, ok := ParseAggregateType(s)
	if !ok {
		return fmt.Errorf("unsupported aggregation function '%s'", s)
	}
	*t = parsed
	return nil
}

// FlattenedName is the deterministic output column name of an aggregation
func FlattenedName(column string, fn AggregateType) string {
	return column + "_" + string(fn)
}

// Filter operators
const (
	OpEq      = "eq"
	OpNe      = "ne"
	OpGt      = "gt"
	OpLt      = "lt"
	OpGte     = "gte"
	OpLte     = "lte"
	OpIn      = "in"
	OpBetween = "between"
)

// FilterCondition 过滤条件
type FilterCondition struct {
	Column   string      `json:"column"`
	Operator string      `json:"operator"` // eq, ne, gt, lt, gte, lte, in, between
	Value    interface{} `json:"value"`
}

// AggregationRequest 聚合请求；Column 也可以是一个聚合度量的名称
type AggregationRequest struct {
	Column   string        `json:"column"`
	Function AggregateType `json:"function"`
}

// OutputName is the flattened result column of a raw aggregation
func (a AggregationRequest) OutputName() string {
	return FlattenedName(a.Column, a.Function)
}

// MeasureDefinition 计算字段定义
type MeasureDefinition struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// Sort orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortKey 排序键
type SortKey struct {
	Column string `json:"column"`
	Order  string `json:"order"` // asc 或 desc，默认 asc
}

// Descending reports whether the key sorts in descending order
func (k SortKey) Descending() bool {
	return strings.EqualFold(strings.TrimSpace(k.Order), OrderDesc)
}

// QueryRequest 查询请求
type QueryRequest struct {
	Filters       []FilterCondition    `json:"filters"`
	GroupBy       []string             `json:"group_by"`
	Aggregations  []AggregationRequest `json:"aggregations"`
	Measures      []MeasureDefinition  `json:"measures"`
	IsHistogram   bool                 `json:"is_histogram"`
	HistogramBins int                  `json:"histogram_bins"`
	SortBy        []SortKey            `json:"sort_by"`
	// Limit >0 truncates, 0 uses the configured default, <0 disables truncation
	Limit int `json:"limit"`
}

// ParseQueryRequest decodes a JSON query request
func ParseQueryRequest(data []byte) (QueryRequest, error) {
	var req QueryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return QueryRequest{}, WrapError(ErrorTypeInvalidQuery, "", err, "invalid query request")
	}
	return req, nil
}

// QueryResult 查询结果
type QueryResult struct {
	Rows          []map[string]interface{} `json:"data"`
	TotalRowCount int                      `json:"total_rows"`
	Columns       []string                 `json:"columns"`
}
