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

package dataset

import "strings"

// Row maps column name to cell value; nil is missing
type Row map[string]interface{}

// Clone copies the row map
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// GroupKey 分区键，由分组字段值拼接而成
type GroupKey string

// KeyOf builds the partition key of a row for the given columns. Missing cells
// get their own marker so that they form a separate partition.
func KeyOf(r Row, columns []string) GroupKey {
	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteString("\x00||\x00")
		}
		v := r[c]
		if v == nil {
			b.WriteString("\x00nil")
			continue
		}
		// 带上类型前缀，避免 "1" 与 1 冲突
		switch v.(type) {
		case float64:
			b.WriteString("n:")
		case bool:
			b.WriteString("b:")
		case string:
			b.WriteString("s:")
		default:
			b.WriteString("t:")
		}
		b.WriteString(FormatValue(v))
	}
	return GroupKey(b.String())
}
