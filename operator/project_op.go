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

package operator

import (
	"github.com/rulego/dataquery/dataset"
)

// ProjectOp keeps the listed columns in order. Names that are not columns of
// the table are dropped, so a skipped measure simply has no column.
type ProjectOp struct {
	*BaseOp
	Fields []string
}

func (o *ProjectOp) Apply(table *dataset.Table) (*dataset.Table, error) {
	seen := make(map[string]bool, len(o.Fields))
	fields := make([]string, 0, len(o.Fields))
	for _, f := range o.Fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		if !table.HasColumn(f) {
			o.logger().Debug("projection: column %s not present", f)
			continue
		}
		fields = append(fields, f)
	}
	return table.Project(fields), nil
}
