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
Package dataset defines the in-memory table every query stage consumes and produces.

A Table is an ordered list of uniquely named columns, each tagged with a Kind, and
an ordered list of rows. Each row is a map from column name to a cell value:

	KindNumeric  -> float64
	KindText     -> string
	KindTemporal -> time.Time
	KindBoolean  -> bool
	missing      -> nil

The kind is decided once, when the table is loaded (see InferKind), and later
stages switch on it rather than inspecting values.

# Usage

	table := dataset.MustNewTable(
		[]dataset.Column{
			{Name: "Region", Kind: dataset.KindText},
			{Name: "Amount", Kind: dataset.KindNumeric},
		},
		[]dataset.Row{
			{"Region": "East", "Amount": 10.0},
			{"Region": "West", "Amount": nil},
		},
	)

Tables passed into the engine are never modified. Stages that need to add
columns call Clone first and work on the copy.
*/
package dataset
