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
	"time"

	"github.com/spf13/cast"

	"github.com/rulego/dataquery/dataset"
)

// 时间维度列后缀
const (
	SuffixYear      = "_Year"
	SuffixMonth     = "_Month"
	SuffixQuarter   = "_Quarter"
	SuffixDayOfWeek = "_DayOfWeek"
)

// TimeIntelligence derives calendar columns from a date column:
// {column}_Year (numeric), {column}_Month ("January"), {column}_Quarter ("Q1")
// and {column}_DayOfWeek ("Monday"). Values that do not parse as dates give
// missing cells. A table without the column is returned unchanged.
func TimeIntelligence(column string) Transformer {
	return Func(func(table *dataset.Table) (*dataset.Table, error) {
		if !table.HasColumn(column) {
			return table, nil
		}
		n := table.Len()
		years := make([]interface{}, n)
		months := make([]interface{}, n)
		quarters := make([]interface{}, n)
		days := make([]interface{}, n)

		for i := 0; i < n; i++ {
			ts, ok := toTime(table.Value(i, column))
			if !ok {
				continue
			}
			years[i] = float64(ts.Year())
			months[i] = ts.Month().String()
			quarters[i] = fmt.Sprintf("Q%d", (int(ts.Month())-1)/3+1)
			days[i] = ts.Weekday().String()
		}

		return withColumns(table,
			[]dataset.Column{
				{Name: column + SuffixYear, Kind: dataset.KindNumeric},
				{Name: column + SuffixMonth, Kind: dataset.KindText},
				{Name: column + SuffixQuarter, Kind: dataset.KindText},
				{Name: column + SuffixDayOfWeek, Kind: dataset.KindText},
			},
			[][]interface{}{years, months, quarters, days},
		)
	})
}

func toTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, !val.IsZero()
	case string:
		ts, err := cast.ToTimeE(val)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	}
	return time.Time{}, false
}
