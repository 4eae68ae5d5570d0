// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package compiler

import (
	"fmt"
	"strings"

	"go.previous-lang.org/previous/syntax"
)

type Error struct {
	code    uint32
	message string
	span    syntax.Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() syntax.Span {
	return err.span
}

func errDuplicateResourceName(name string, span syntax.Span) error {
	return &Error{
		code:    3000,
		message: fmt.Sprintf("Duplicate resource name %q", name),
		span:    span,
	}
}

func errDuplicateFieldName(resource, field string, span syntax.Span) error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Duplicate field name %q in resource %q", field, resource),
		span:    span,
	}
}

func errUndefinedType(name string, span syntax.Span) error {
	return &Error{
		code:    3002,
		message: fmt.Sprintf("Undefined type %q", name),
		span:    span,
	}
}

func errInvalidPrimitiveType(name string, span syntax.Span) error {
	return &Error{
		code:    3003,
		message: fmt.Sprintf("Invalid primitive type %q", name),
		span:    span,
	}
}

func errDependencyCycle(names []string) error {
	return &Error{
		code:    3100,
		message: "Cyclic resource dependency: " + strings.Join(names, " → "),
	}
}
