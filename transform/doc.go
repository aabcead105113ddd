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

// Package transform 提供查询前的表转换。
//
// 内置转换器：
//
//	sanitize                 列名去空白，空格和点替换为下划线
//	time_intelligence:<col>  由日期列派生 <col>_Year、<col>_Month、<col>_Quarter、<col>_DayOfWeek
//
// 转换器按顺序组成 Chain，任何一步出错都会终止查询。自定义转换器可以直接
// 使用 Func，或通过 Register 注册后用 Parse 按名称构造。
package transform
