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

package syntax

import (
	"fmt"
)

type Error struct {
	code    uint32
	message string
	span    Span
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

func (err *Error) Span() Span {
	return err.span
}

func errExpectedKeywordResource(gotKind TokenKind, gotToken string, span Span) error {
	return &Error{
		code:    2000,
		message: fmt.Sprintf("Expected keyword 'resource', got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}

func errExpectedResourceName(gotKind TokenKind, gotToken string, span Span) error {
	return &Error{
		code:    2001,
		message: fmt.Sprintf("Expected resource name, got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}

func errResourceNameNotPascalCase(name string, span Span) error {
	return &Error{
		code:    2002,
		message: fmt.Sprintf("Resource name %q must be PascalCase", name),
		span:    span,
	}
}

func errExpectedSigil(
	wantKind TokenKind,
	gotKind TokenKind,
	gotToken string,
	span Span,
) error {
	var code uint32
	var want string
	switch wantKind {
	case T_OPEN_CURL:
		code = 2003
		want = "{"
	case T_CLOSE_CURL:
		code = 2004
		want = "}"
	case T_OPEN_PAREN:
		code = 2005
		want = "("
	case T_CLOSE_PAREN:
		code = 2006
		want = ")"
	default:
		panic("unreachable")
	}
	return &Error{
		code:    code,
		message: fmt.Sprintf("Expected sigil '%s', got (%s %q)", want, gotKind, gotToken),
		span:    span,
	}
}

func errExpectedFieldName(gotKind TokenKind, gotToken string, span Span) error {
	return &Error{
		code:    2007,
		message: fmt.Sprintf("Expected field name, got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}

func errExpectedType(gotKind TokenKind, gotToken string, span Span) error {
	return &Error{
		code:    2008,
		message: fmt.Sprintf("Expected field type, got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}

func errExpectedLiteral(gotKind TokenKind, gotToken string, span Span) error {
	return &Error{
		code:    2009,
		message: fmt.Sprintf("Expected default value literal, got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}
