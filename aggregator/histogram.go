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

	"github.com/shopspring/decimal"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

// Histogram output columns
const (
	BinColumn   = "bin"
	CountColumn = "count"
)

var half = decimal.NewFromFloat(0.5)

// Bin counts the non-missing values of column in bins equal-width intervals
// over the observed range. Intervals are half-open except the last, which is
// closed so the maximum is counted. bins <= 0 uses the default bin count.
// ±Inf cells have no finite bin and are left out like missing cells.
func Bin(table *dataset.Table, column string, bins int) (*dataset.Table, error) {
	col, ok := table.Column(column)
	if !ok {
		return nil, types.ErrUnknownColumn(column)
	}
	if !col.Kind.IsNumeric() {
		return nil, types.NewError(types.ErrorTypeAggregation, column, "cannot bin %s column '%s'", col.Kind, column)
	}
	if bins <= 0 {
		bins = types.DefaultHistogramBins
	}

	output := []dataset.Column{
		{Name: BinColumn, Kind: dataset.KindText},
		{Name: CountColumn, Kind: dataset.KindNumeric},
	}

	values := make([]decimal.Decimal, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		f, ok, err := dataset.ToFloat(table.Value(i, column), col.Kind)
		if err != nil {
			return nil, types.WrapError(types.ErrorTypeAggregation, column, err, "cannot bin '%s'", column)
		}
		if ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
			values = append(values, decimal.NewFromFloat(f))
		}
	}
	if len(values) == 0 {
		return dataset.Empty(output...), nil
	}

	lo, hi := decimal.Min(values[0], values[1:]...), decimal.Max(values[0], values[1:]...)
	if lo.Equal(hi) {
		lo, hi = lo.Sub(half), hi.Add(half)
	}
	width := binWidth(hi.Sub(lo), bins)
	places := labelPlaces(width)

	counts := make([]int, bins)
	for _, v := range values {
		idx := 0
		if !width.IsZero() {
			idx = int(v.Sub(lo).Div(width).Floor().IntPart())
		}
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	rows := make([]dataset.Row, bins)
	for i := 0; i < bins; i++ {
		start := lo.Add(width.Mul(decimal.NewFromInt(int64(i))))
		end := hi
		if i < bins-1 {
			end = lo.Add(width.Mul(decimal.NewFromInt(int64(i + 1))))
		}
		closing := ")"
		if i == bins-1 {
			closing = "]"
		}
		rows[i] = dataset.Row{
			BinColumn:   fmt.Sprintf("[%s, %s%s", formatEdge(start, places), formatEdge(end, places), closing),
			CountColumn: float64(counts[i]),
		}
	}
	return dataset.NewTable(output, rows)
}

// binWidth divides span into bins parts. Div keeps 16 decimal places, which
// rounds very narrow ranges to zero, so precision grows with the span's scale.
func binWidth(span decimal.Decimal, bins int) decimal.Decimal {
	precision := int32(decimal.DivisionPrecision)
	if e := span.Exponent(); e < 0 {
		precision -= e
	}
	return span.DivRound(decimal.NewFromInt(int64(bins)), precision)
}

// labelPlaces is the number of decimal places at which width is still non-zero,
// at least four
func labelPlaces(width decimal.Decimal) int32 {
	places := int32(4)
	for places < 64 && !width.IsZero() && width.Round(places).IsZero() {
		places++
	}
	return places
}

// formatEdge prints one decimal place when that is exact, otherwise up to places
func formatEdge(d decimal.Decimal, places int32) string {
	if d.Round(1).Equal(d) {
		return d.StringFixed(1)
	}
	return d.Round(places).String()
}
