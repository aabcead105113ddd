/*
 * Copyright 2024 The RuleGo Authors.
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
Package types provides the request, result, configuration and error types shared
by every dataquery package.

# Query Request

A QueryRequest is the declarative description of one query. Its JSON form is the
payload the dashboard frontend posts:

	{
	  "filters":      [{"column": "Region", "operator": "in", "value": ["East", "West"]}],
	  "group_by":     ["Region"],
	  "aggregations": [{"column": "Amount", "function": "sum"}, {"column": "Margin"}],
	  "measures":     [{"name": "Margin", "formula": "SUM(Profit)/SUM(Sales)"}],
	  "sort_by":      [{"column": "Amount_sum", "order": "desc"}],
	  "limit":        20
	}

An aggregation entry whose column names an aggregate measure requests that
measure; every other entry is a raw aggregation whose output column is named
"{column}_{function}" (see FlattenedName).

# Errors

Every failure surfaced by the engine is a *QueryError carrying an ErrorType:

	result, err := engine.Execute(table, req)
	if types.IsErrorType(err, types.ErrorTypeUnknownColumn) {
		// ...
	}

# Configuration

Config holds engine defaults (limit, histogram bins), aggregation parallelism and
loader limits. NewConfig returns the defaults; ParallelAggregationConfig is a
preset for wide tables.
*/
package types
