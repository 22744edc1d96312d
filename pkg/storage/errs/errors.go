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

// Package errs holds the error kinds surfaced by the storage packages.
// Infrastructure failures (not found, timeout, connection) are yarpc status
// errors so they can cross RPC boundaries unchanged; everything else is a
// typed error that callers can match with the Is* predicates.
package errs

import (
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/yarpc/yarpcerrors"
)

// NotFoundf returns a NotFound error. NotFound is expected control flow and
// must not be logged as an error.
func NotFoundf(format string, args ...interface{}) error {
	return yarpcerrors.NotFoundErrorf(format, args...)
}

// Timeoutf returns a TimeoutError. The outcome of the timed out statement is
// unknown, it must not be treated as rolled back.
func Timeoutf(format string, args ...interface{}) error {
	return yarpcerrors.DeadlineExceededErrorf(format, args...)
}

// Connectionf returns a ConnectionError.
func Connectionf(format string, args ...interface{}) error {
	return yarpcerrors.UnavailableErrorf(format, args...)
}

// ConfigurationError is a fatal setup problem such as an unknown consistency
// level. It is never retried.
type ConfigurationError struct {
	Msg string
}

// NewConfigurationError returns a new ConfigurationError.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// MigrationNotFoundError is raised when a stored row cannot be upgraded
// because a version in the upgrade range has no registered migration.
type MigrationNotFoundError struct {
	From      int
	Missing   int
	Available []int
}

func (e *MigrationNotFoundError) Error() string {
	versions := make([]string, 0, len(e.Available))
	for _, v := range e.Available {
		versions = append(versions, fmt.Sprint(v))
	}
	return fmt.Sprintf(
		"cannot migrate a record from version %d: no migration for version %d, migrations exist for [%s]",
		e.From, e.Missing, strings.Join(versions, ", "))
}

// TypeMismatchError is returned by a codec asked to encode a value of the
// wrong kind.
type TypeMismatchError struct {
	Codec string
	Value interface{}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s codec cannot encode value %#v of type %T", e.Codec, e.Value, e.Value)
}

// FormatError is returned when stored bytes do not match the strict format
// of the declared type.
type FormatError struct {
	Codec string
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s value %q: %v", e.Codec, e.Input, e.Err)
	}
	return fmt.Sprintf("invalid %s value %q", e.Codec, e.Input)
}

func (e *FormatError) Unwrap() error { return e.Err }

// DecodeError is returned for malformed keys and schema version tags.
type DecodeError struct {
	Msg string
}

// NewDecodeError returns a new DecodeError.
func NewDecodeError(format string, args ...interface{}) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Error() string {
	return "decode error: " + e.Msg
}

// ReadOnlyError is returned when a mutation is attempted on a read-only record.
type ReadOnlyError struct {
	Key string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("record %q is read-only", e.Key)
}

// ColumnFamilyNotFoundError means the column family has not been created yet.
// Callers may recover by creating it.
type ColumnFamilyNotFoundError struct {
	Name string
}

func (e *ColumnFamilyNotFoundError) Error() string {
	return fmt.Sprintf("column family %q does not exist", e.Name)
}

// StoreError wraps an error returned by the store for one adapter operation.
type StoreError struct {
	Op           string
	ColumnFamily string
	Err          error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.ColumnFamily, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func hasCode(err error, code yarpcerrors.Code) bool {
	var st *yarpcerrors.Status
	if stderrors.As(err, &st) {
		return st.Code() == code
	}
	return false
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return hasCode(err, yarpcerrors.CodeNotFound)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	return hasCode(err, yarpcerrors.CodeDeadlineExceeded)
}

// IsConnection reports whether err is a ConnectionError.
func IsConnection(err error) bool {
	return hasCode(err, yarpcerrors.CodeUnavailable)
}

// IsConfiguration reports whether err is a ConfigurationError or a
// MigrationNotFoundError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	var me *MigrationNotFoundError
	return stderrors.As(err, &ce) || stderrors.As(err, &me)
}

// IsMigrationNotFound reports whether err is a MigrationNotFoundError.
func IsMigrationNotFound(err error) bool {
	var me *MigrationNotFoundError
	return stderrors.As(err, &me)
}

// IsTypeMismatch reports whether err is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var te *TypeMismatchError
	return stderrors.As(err, &te)
}

// IsDecode reports whether err is a DecodeError or a FormatError.
func IsDecode(err error) bool {
	var de *DecodeError
	var fe *FormatError
	return stderrors.As(err, &de) || stderrors.As(err, &fe)
}

// IsReadOnly reports whether err is a ReadOnlyError.
func IsReadOnly(err error) bool {
	var re *ReadOnlyError
	return stderrors.As(err, &re)
}

// IsColumnFamilyNotFound reports whether err means the column family does
// not exist.
func IsColumnFamilyNotFound(err error) bool {
	var ce *ColumnFamilyNotFoundError
	return stderrors.As(err, &ce)
}
