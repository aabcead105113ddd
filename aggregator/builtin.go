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
	"math"

	"github.com/montanaflynn/stats"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

// AggregatorFunction reduces the non-missing values of one partition.
// Numeric reducers receive float64 values; min, max and count receive cells
// as stored in the table.
type AggregatorFunction interface {
	New() AggregatorFunction
	Add(value interface{})
	// Result returns nil when nothing was added, except count which returns 0
	Result() interface{}
}

// CreateBuiltinAggregator returns a fresh reducer for t
func CreateBuiltinAggregator(t types.AggregateType) (AggregatorFunction, error) {
	switch t {
	case types.Sum:
		return &SumAggregator{}, nil
	case types.Avg:
		return &AvgAggregator{}, nil
	case types.Count:
		return &CountAggregator{}, nil
	case types.Min:
		return &MinAggregator{}, nil
	case types.Max:
		return &MaxAggregator{}, nil
	case types.Median:
		return &MedianAggregator{}, nil
	case types.Std:
		return &StdDevAggregator{}, nil
	default:
		return nil, fmt.Errorf("unsupported aggregator type: %s", t)
	}
}

// requiresNumeric reports whether t does arithmetic on its inputs
func requiresNumeric(t types.AggregateType) bool {
	switch t {
	case types.Sum, types.Avg, types.Median, types.Std:
		return true
	}
	return false
}

// Accepts reports whether a reducer of type t can run over a column of kind k
func Accepts(t types.AggregateType, k dataset.Kind) bool {
	return !requiresNumeric(t) || k.IsNumeric()
}

// resultKind is the kind of the column produced by reducing a source column
func resultKind(t types.AggregateType, source dataset.Kind) dataset.Kind {
	switch t {
	case types.Min, types.Max:
		return source
	default:
		return dataset.KindNumeric
	}
}

type SumAggregator struct {
	value float64
	count int
}

func (s *SumAggregator) New() AggregatorFunction {
	return &SumAggregator{}
}

func (s *SumAggregator) Add(v interface{}) {
	s.value += v.(float64)
	s.count++
}

func (s *SumAggregator) Result() interface{} {
	if s.count == 0 {
		return nil
	}
	return s.value
}

type CountAggregator struct {
	count int
}

func (c *CountAggregator) New() AggregatorFunction {
	return &CountAggregator{}
}

func (c *CountAggregator) Add(_ interface{}) {
	c.count++
}

func (c *CountAggregator) Result() interface{} {
	return float64(c.count)
}

type AvgAggregator struct {
	sum   float64
	count int
}

func (a *AvgAggregator) New() AggregatorFunction {
	return &AvgAggregator{}
}

func (a *AvgAggregator) Add(v interface{}) {
	a.sum += v.(float64)
	a.count++
}

func (a *AvgAggregator) Result() interface{} {
	if a.count == 0 {
		return nil
	}
	return a.sum / float64(a.count)
}

// MinAggregator keeps the smallest value using the ordering of its kind
type MinAggregator struct {
	value interface{}
}

func (m *MinAggregator) New() AggregatorFunction {
	return &MinAggregator{}
}

func (m *MinAggregator) Add(v interface{}) {
	if m.value == nil || dataset.Compare(v, m.value) < 0 {
		m.value = v
	}
}

func (m *MinAggregator) Result() interface{} {
	return m.value
}

// MaxAggregator keeps the largest value using the ordering of its kind
type MaxAggregator struct {
	value interface{}
}

func (m *MaxAggregator) New() AggregatorFunction {
	return &MaxAggregator{}
}

func (m *MaxAggregator) Add(v interface{}) {
	if m.value == nil || dataset.Compare(v, m.value) > 0 {
		m.value = v
	}
}

func (m *MaxAggregator) Result() interface{} {
	return m.value
}

// MedianAggregator averages the two middle values for even counts
type MedianAggregator struct {
	values []float64
}

func (m *MedianAggregator) New() AggregatorFunction {
	return &MedianAggregator{}
}

func (m *MedianAggregator) Add(v interface{}) {
	m.values = append(m.values, v.(float64))
}

func (m *MedianAggregator) Result() interface{} {
	if len(m.values) == 0 {
		return nil
	}
	return median(m.values)
}

// StdDevAggregator is the sample standard deviation (n-1)
type StdDevAggregator struct {
	values []float64
}

func (s *StdDevAggregator) New() AggregatorFunction {
	return &StdDevAggregator{}
}

func (s *StdDevAggregator) Add(v interface{}) {
	s.values = append(s.values, v.(float64))
}

func (s *StdDevAggregator) Result() interface{} {
	if len(s.values) < 2 {
		return nil
	}
	std, err := stats.StandardDeviationSample(s.values)
	if err != nil {
		return nil
	}
	return dataset.Float(std)
}

// median leaves values in their original order
func median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return math.NaN()
	}
	return m
}
