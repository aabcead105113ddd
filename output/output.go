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

// Package output renders query results as CSV, JSON or console tables.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

// columnsOf returns the result's column order, falling back to the sorted
// union of row keys when Columns is empty
func columnsOf(result *types.QueryResult) []string {
	if len(result.Columns) > 0 {
		return result.Columns
	}
	set := make(map[string]bool)
	for _, row := range result.Rows {
		for k := range row {
			set[k] = true
		}
	}
	columns := make([]string, 0, len(set))
	for k := range set {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

func cell(row map[string]interface{}, column, missing string) string {
	v, ok := row[column]
	if !ok || dataset.IsMissing(v) {
		return missing
	}
	return dataset.FormatValue(v)
}

// WriteCSV writes a header line followed by one line per row.
// Missing values are empty fields.
func WriteCSV(w io.Writer, result *types.QueryResult) error {
	columns := columnsOf(result)
	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(columns))
	for i, row := range result.Rows {
		for j, c := range columns {
			record[j] = cell(row, c, "")
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the result as indented JSON
func WriteJSON(w io.Writer, result *types.QueryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// PrintTable renders the result as a bordered console table followed by a
// row count line
func PrintTable(w io.Writer, result *types.QueryResult) {
	if len(result.Rows) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}
	columns := columnsOf(result)

	table := tablewriter.NewWriter(w)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range result.Rows {
		line := make([]string, len(columns))
		for j, c := range columns {
			line[j] = cell(row, c, "null")
		}
		table.Append(line)
	}
	table.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(result.Rows))
}
