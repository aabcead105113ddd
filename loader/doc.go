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
Package loader reads flat files into dataset tables.

Supported formats are picked by extension:

	.csv .txt      encoding/csv, first record is the header
	.parquet .pq   parquet-go, column names taken from the schema

Every column gets exactly one kind. Kinds are inferred from the non-empty cells
in the order numeric, boolean, temporal, text, and the cells are then coerced to
that kind. Empty cells are missing. With WithKindSampleSize only the first n
values are inspected; if a later value does not fit the sampled kind the column
is inferred again from all of its values.

Files larger than the configured MaxFileSize fail with FILE_TOO_LARGE before
any row is read. Preview stops after n data rows.

# Usage

	table, err := loader.Load("sales.csv", loader.WithMaxFileSize(10<<20))
	head, err := loader.Preview("sales.parquet", 20)
*/
package loader
