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
Package expr parses and evaluates measure formulas.

The grammar is deliberately small: numeric literals, column identifiers, the
operators + - * /, parentheses and calls to the aggregate functions
(sum, avg, mean, count, min, max, median, std, stddev; case-insensitive).
Anything else, such as string literals, comparisons or other function names, is
rejected at compile time instead of being executed.

Identifiers may contain letters, digits, underscores and dots. Names with other
characters are written in backticks:

	Profit / `Unit Price`

# Usage

Row-level formula:

	e, err := expr.Compile("Revenue - Cost")
	v, ok, err := e.Evaluate(func(name string) (float64, bool, error) {
		return row[name], true, nil
	})

Aggregate formula, rewritten against flattened aggregation columns:

	e := expr.MustCompile("SUM(Profit) / SUM(Sales)")
	rewritten, refs, err := expr.RewriteAggregates(e)
	// rewritten.String() == "Profit_sum / Sales_sum"
	// refs == []string{"Profit_sum", "Sales_sum"}

Evaluation returns ok=false when an operand is missing. Division by zero is not
an error and yields ±Inf or NaN.
*/
package expr
