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

// LimitOp keeps the first Limit rows. A negative Limit keeps everything.
type LimitOp struct {
	*BaseOp
	Limit int
}

func (o *LimitOp) Apply(table *dataset.Table) (*dataset.Table, error) {
	if o.Limit < 0 || o.Limit >= table.Len() {
		return table, nil
	}
	o.logger().Debug("limit: %d of %d rows", o.Limit, table.Len())
	return table.Head(o.Limit), nil
}
