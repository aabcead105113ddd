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

/*
Package condition filters tables by a conjunction of column conditions.

Each operator is an expr-lang program over the cell value and the filter value:

	eq       v == arg
	ne       v != arg
	gt       v > arg
	lt       v < arg
	gte      v >= arg
	lte      v <= arg
	in       v in arg
	between  v >= lo && v <= hi

The filter value is coerced to the kind of the column before evaluation, so the
JSON number 10 compares numerically against a numeric column and the string
"2024-01-31" compares as a date against a temporal column. A value that cannot
be coerced is used as is; ordering comparisons between incompatible values then
fail with a FILTER_EVALUATION_ERROR.

Missing cells never satisfy eq, gt, lt, gte, lte, in or between and always
satisfy ne.

# Usage

	filtered, err := condition.Apply(table, []types.FilterCondition{
		{Column: "Region", Operator: "in", Value: []interface{}{"East", "West"}},
		{Column: "Amount", Operator: "between", Value: []interface{}{10, 100}},
	})

Row selection is kept in a roaring bitmap; each condition only visits rows the
previous conditions kept. Select exposes the bitmap directly.
*/
package condition
