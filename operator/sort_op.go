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
	"sort"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

// SortField is one resolved sort key
type SortField struct {
	Column     string
	Descending bool
}

// SortFields converts request sort keys
func SortFields(keys []types.SortKey) []SortField {
	fields := make([]SortField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, SortField{Column: k.Column, Descending: k.Descending()})
	}
	return fields
}

// SortOp orders rows by several keys. The sort is stable and missing values
// go last whatever the direction.
type SortOp struct {
	*BaseOp
	Keys []SortField
}

func (o *SortOp) Apply(table *dataset.Table) (*dataset.Table, error) {
	keys := make([]SortField, 0, len(o.Keys))
	for _, k := range o.Keys {
		if !table.HasColumn(k.Column) {
			o.logger().Debug("sort: column %s not present, ignored", k.Column)
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 || table.Len() < 2 {
		return table, nil
	}

	indices := make([]int, table.Len())
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return compareRows(table, indices[a], indices[b], keys) < 0
	})
	return table.Subset(indices), nil
}

func compareRows(table *dataset.Table, a, b int, keys []SortField) int {
	for _, k := range keys {
		va, vb := table.Value(a, k.Column), table.Value(b, k.Column)
		ma, mb := dataset.IsMissing(va), dataset.IsMissing(vb)
		switch {
		case ma && mb:
			continue
		case ma:
			return 1
		case mb:
			return -1
		}
		c := dataset.Compare(va, vb)
		if c == 0 {
			continue
		}
		if k.Descending {
			return -c
		}
		return c
	}
	return 0
}
