/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package core

import (
	"fmt"
	"strings"
)

type StringBuilder struct {
	buffer strings.Builder
}

func NewStringBuilder(s ...string) *StringBuilder {
	sb := StringBuilder{}
	for _, v := range s {
		_, _ = sb.buffer.WriteString(v)
	}
	return &sb
}

func (w *StringBuilder) Clear() {
	w.buffer.Reset()
}

func (w *StringBuilder) Len() int {
	return w.buffer.Len()
}

func (w *StringBuilder) WriteLine(value ...interface{}) {
	w.Write(value...)
	w.buffer.WriteString(LineSeparator)
}

func (w *StringBuilder) WriteJoinCustomize(sep string, print func(item interface{}) string, elems ...interface{}) {
	for i, e := range elems {
		if i > 0 {
			w.buffer.WriteString(sep)
		}
		w.buffer.WriteString(print(e))
	}
}

func (w *StringBuilder) WriteJoin(sep string, elems ...interface{}) {
	w.WriteJoinCustomize(sep, func(item interface{}) string {
		return fmt.Sprint(item)
	}, elems...)
}

func (w *StringBuilder) Write(value ...interface{}) {
	for _, v := range value {
		switch s := v.(type) {
		case string:
			_, _ = w.buffer.WriteString(s)
		case fmt.Stringer:
			_, _ = w.buffer.WriteString(s.String())
		default:
			_, _ = w.buffer.WriteString(fmt.Sprint(v))
		}
	}
}

func (w *StringBuilder) WriteLineF(format string, args ...interface{}) {
	w.WriteFormat(format, args...)
	w.buffer.WriteString(LineSeparator)
}

func (w *StringBuilder) WriteFormat(format string, arg ...interface{}) {
	_, _ = w.buffer.WriteString(fmt.Sprintf(format, arg...))
}

func (w *StringBuilder) String() string {
	return w.buffer.String()
}
