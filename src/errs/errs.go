/*
Copyright (c) Dataveil Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package errs

import (
	"errors"
	"fmt"
)

// ErrEmptySelection is returned when masking is invoked with zero target
// columns. An empty selection is treated as a caller bug, not a no-op.
var ErrEmptySelection = errors.New("no columns selected for masking")

type UnsupportedFormatError struct {
	fileName         string
	extension        string
	supportedFormats []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for file %q. Supported formats are: %v",
		e.extension, e.fileName, e.supportedFormats)
}

func NewUnsupportedFormatError(fileName string, extension string, supportedFormats []string) *UnsupportedFormatError {
	return &UnsupportedFormatError{
		fileName:         fileName,
		extension:        extension,
		supportedFormats: supportedFormats,
	}
}

type MalformedStoreError struct {
	filePath string
	err      error
}

func (e *MalformedStoreError) Error() string {
	return fmt.Sprintf("mapping store document %q does not conform to the expected {column: {original: token}} schema: %s",
		e.filePath, e.err.Error())
}

func (e *MalformedStoreError) Unwrap() error {
	return e.err
}

func NewMalformedStoreError(filePath string, err error) *MalformedStoreError {
	return &MalformedStoreError{filePath: filePath, err: err}
}

type UnknownColumnError struct {
	operation        string
	unknownColumns   []string
	validColumnNames []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column names in the %s list: %v. Valid column names are: %v",
		e.operation, e.unknownColumns, e.validColumnNames)
}

func (e *UnknownColumnError) UnknownColumns() []string {
	return e.unknownColumns
}

func NewUnknownColumnError(operation string, unknownColumns []string, validColumnNames []string) *UnknownColumnError {
	return &UnknownColumnError{
		operation:        operation,
		unknownColumns:   unknownColumns,
		validColumnNames: validColumnNames,
	}
}

// TokenCollisionError reports two distinct original values whose truncated
// digests collide within one column mapping. Silently overwriting would make
// one of the originals unrecoverable, so the whole operation is aborted
// before any store mutation.
type TokenCollisionError struct {
	columnName       string
	token            string
	existingOriginal string
	newOriginal      string
}

func (e *TokenCollisionError) Error() string {
	return fmt.Sprintf("token collision in column %q: token %q already maps to %q, cannot also map %q",
		e.columnName, e.token, e.existingOriginal, e.newOriginal)
}

func NewTokenCollisionError(columnName string, token string, existingOriginal string, newOriginal string) *TokenCollisionError {
	return &TokenCollisionError{
		columnName:       columnName,
		token:            token,
		existingOriginal: existingOriginal,
		newOriginal:      newOriginal,
	}
}
