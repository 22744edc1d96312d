// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package querybuilder

import (
	"bytes"
	"fmt"
	"strings"
)

// cond compares one column with a value.
type cond struct {
	column string
	op     string
	value  Sqlizer
}

func (c cond) ToCQL() (string, error) {
	if c.column == "" {
		return "", fmt.Errorf("condition %q has no column", c.op)
	}
	v, err := c.value.ToCQL()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", c.column, c.op, v), nil
}

// Eq is "column = value".
func Eq(column string, value Sqlizer) Sqlizer { return cond{column, "=", value} }

// Lt is "column < value".
func Lt(column string, value Sqlizer) Sqlizer { return cond{column, "<", value} }

// LtOrEq is "column <= value".
func LtOrEq(column string, value Sqlizer) Sqlizer { return cond{column, "<=", value} }

// Gt is "column > value".
func Gt(column string, value Sqlizer) Sqlizer { return cond{column, ">", value} }

// GtOrEq is "column >= value".
func GtOrEq(column string, value Sqlizer) Sqlizer { return cond{column, ">=", value} }

// in is "column IN (v1, v2)".
type in struct {
	column string
	values []Sqlizer
}

// In is "column IN (values...)". An empty list is an error since CQL has no
// representation for it.
func In(column string, values ...Sqlizer) Sqlizer {
	return in{column: column, values: values}
}

func (i in) ToCQL() (string, error) {
	if len(i.values) == 0 {
		return "", fmt.Errorf("IN on %s needs at least one value", i.column)
	}
	parts := make([]string, 0, len(i.values))
	for _, v := range i.values {
		s, err := v.ToCQL()
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("%s IN (%s)", i.column, strings.Join(parts, ", ")), nil
}

// exprs renders a list of fragments joined by sep.
type exprs []Sqlizer

func (es exprs) appendToCQL(w *bytes.Buffer, sep string) error {
	for i, e := range es {
		if i > 0 {
			w.WriteString(sep)
		}
		s, err := e.ToCQL()
		if err != nil {
			return err
		}
		w.WriteString(s)
	}
	return nil
}

// using is one option of a USING clause, e.g. "TTL 30".
type using struct {
	option string
	value  int64
}

func (u using) ToCQL() (string, error) {
	return fmt.Sprintf("%s %d", u.option, u.value), nil
}
