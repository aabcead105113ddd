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
Package aggregator groups and reduces tables, evaluates aggregate measures over
the result and bins numeric columns into histograms.

# Aggregation

MergeRequests turns requested (column, function) pairs into deduplicated
AggregationFields. GroupAggregator partitions the rows by the group-by columns
(first-seen order, missing values form their own partition) and reduces every
field per partition:

	fields := aggregator.MergeRequests(
		types.AggregationRequest{Column: "Sales", Function: types.Sum},
		types.AggregationRequest{Column: "Sales", Function: types.Avg},
	)
	result, err := aggregator.NewGroupAggregator([]string{"Region"}, fields).Aggregate(table)
	// columns: Region, Sales_sum, Sales_avg

Reducers:

	sum, avg, median, std  numeric and boolean columns; std is the sample deviation
	min, max               any kind, using the kind's ordering
	count                  non-missing values of any kind

A partition with no non-missing values yields null for every function except
count, which yields 0. Unknown aggregation columns are skipped with a warning.

With exactly two group-by columns and one aggregation field the result is
pivoted: one row per value of the first column and one column per value of the
second. WithParallel computes independent fields concurrently with an errgroup.

# Aggregate measures

PostAggregationProcessor rewrites "SUM(Profit) / SUM(Sales)" to
"Profit_sum / Sales_sum" and evaluates it per aggregated row.

# Histograms

Bin counts values per equal-width interval and labels intervals with exact
decimal edges, for example "[10.0, 20.0)" and "[90.0, 100.0]".
*/
package aggregator
