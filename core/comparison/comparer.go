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

package comparison

import (
	"fmt"
	"reflect"
	"strings"
)

func IsCompareSupported(value interface{}) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

// Compare orders two values of the same family: numbers of any width are compared by value,
// strings lexically. Mixing a number and a string is an error.
func Compare(a, b interface{}) (int, error) {
	if !IsCompareSupported(a) || !IsCompareSupported(b) {
		return 0, fmt.Errorf("unsupported type for comparison: %T, %T", a, b)
	}

	sa, aIsString := a.(string)
	sb, bIsString := b.(string)
	if aIsString || bIsString {
		if aIsString && bIsString {
			return strings.Compare(sa, sb), nil
		}
		return 0, fmt.Errorf("can not compare %T with %T", a, b)
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	switch {
	case isInt(va) && isInt(vb):
		return compareInt64(va.Int(), vb.Int()), nil
	case isUint(va) && isUint(vb):
		return compareUint64(va.Uint(), vb.Uint()), nil
	case isInt(va) && isUint(vb):
		if va.Int() < 0 {
			return -1, nil
		}
		return compareUint64(uint64(va.Int()), vb.Uint()), nil
	case isUint(va) && isInt(vb):
		if vb.Int() < 0 {
			return 1, nil
		}
		return compareUint64(va.Uint(), uint64(vb.Int())), nil
	}
	return compareFloat64(toFloat64(va), toFloat64(vb)), nil
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func toFloat64(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
