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
	"strings"

	"github.com/rulego/dataquery/dataset"
)

var nameReplacer = strings.NewReplacer(" ", "_", ".", "_")

// SanitizeName trims a column name and replaces spaces and dots with '_'
func SanitizeName(name string) string {
	return nameReplacer.Replace(strings.TrimSpace(name))
}

// SanitizeColumnNames renames every column with SanitizeName so names can be
// used as formula identifiers. Two columns that sanitise to the same name are
// an error.
func SanitizeColumnNames() Transformer {
	return Func(func(table *dataset.Table) (*dataset.Table, error) {
		columns := table.Columns()
		renamed := make(map[string]string, len(columns))
		owner := make(map[string]string, len(columns))
		for i, c := range columns {
			name := SanitizeName(c.Name)
			if prev, exists := owner[name]; exists {
				return nil, fmt.Errorf("columns '%s' and '%s' both sanitise to '%s'", prev, c.Name, name)
			}
			owner[name] = c.Name
			renamed[c.Name] = name
			columns[i].Name = name
		}

		rows := make([]dataset.Row, table.Len())
		for i := range rows {
			src := table.Row(i)
			row := make(dataset.Row, len(src))
			for k, v := range src {
				row[renamed[k]] = v
			}
			rows[i] = row
		}
		return dataset.NewTable(columns, rows)
	})
}
