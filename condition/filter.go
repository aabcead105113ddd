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

package condition

import (
	roaring "github.com/RoaringBitmap/roaring/v2"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

// Select returns the indices of the rows satisfying every filter.
// All filters are validated before any row is evaluated. Each filter only
// visits rows still selected by the previous ones.
func Select(table *dataset.Table, filters []types.FilterCondition) (*roaring.Bitmap, error) {
	compiled := make([]*Filter, 0, len(filters))
	for _, fc := range filters {
		f, err := NewFilter(table, fc)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, f)
	}

	selected := roaring.New()
	selected.AddRange(0, uint64(table.Len()))

	for _, f := range compiled {
		if selected.IsEmpty() {
			break
		}
		next := roaring.New()
		it := selected.Iterator()
		for it.HasNext() {
			i := it.Next()
			ok, err := f.Match(table.Value(int(i), f.Column()))
			if err != nil {
				return nil, err
			}
			if ok {
				next.Add(i)
			}
		}
		selected = next
	}
	return selected, nil
}

// Apply returns a new table holding the rows that satisfy every filter, in
// their original order. table is not modified. With no filters the result
// holds every row.
func Apply(table *dataset.Table, filters []types.FilterCondition) (*dataset.Table, error) {
	selected, err := Select(table, filters)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, selected.GetCardinality())
	it := selected.Iterator()
	for it.HasNext() {
		indices = append(indices, int(it.Next()))
	}
	return table.Subset(indices), nil
}
