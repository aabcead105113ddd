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

// Package measure handles computed fields.
//
// A measure is aggregate when its formula calls an aggregate function, for
// example "SUM(Profit) / SUM(Sales)", and row-level otherwise, for example
// "Revenue - Cost". Row-level measures become columns of the working table
// before filtering. Aggregate measures are deferred: ExtractDependencies lists
// the raw aggregations they need and the aggregator evaluates them after
// grouping.
package measure
