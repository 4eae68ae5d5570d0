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

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s *Span) Start() uint32 {
	return s.start
}

func (s *Span) End() uint32 {
	return s.start + s.len
}

func (s *Span) Len() uint32 {
	return s.len
}

type TypeKind uint8

const (
	TYPE_PRIMITIVE TypeKind = iota
	TYPE_NAMED
	TYPE_LIST
)

func (k TypeKind) String() string {
	switch k {
	case TYPE_PRIMITIVE:
		return "PRIMITIVE"
	case TYPE_NAMED:
		return "NAMED"
	case TYPE_LIST:
		return "LIST"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// Type is an unresolved field type. Name holds the primitive keyword for
// TYPE_PRIMITIVE and the referenced resource name for TYPE_NAMED; Elem is
// set for TYPE_LIST.
type Type struct {
	Kind TypeKind
	Name string
	Elem *Type

	span Span
}

func (t *Type) Span() Span {
	return t.span
}

type LiteralKind uint8

const (
	LIT_TEXT LiteralKind = iota
	LIT_INT
	LIT_BOOL
)

type Literal struct {
	Kind LiteralKind
	Text string
	Int  int64
	Bool bool

	span Span
}

func (l *Literal) Span() Span {
	return l.span
}

type Field struct {
	Name     string
	Type     *Type
	Nullable bool
	Optional bool
	Default  *Literal

	// Index is the zero-based declaration position within the resource,
	// assigned during parsing and never renumbered.
	Index uint32

	span     Span
	nameSpan Span
}

func (f *Field) Span() Span {
	return f.span
}

func (f *Field) NameSpan() Span {
	return f.nameSpan
}

type Resource struct {
	Name   string
	Fields []*Field

	span     Span
	nameSpan Span
}

func (r *Resource) Span() Span {
	return r.span
}

func (r *Resource) NameSpan() Span {
	return r.nameSpan
}

type Program struct {
	Resources []*Resource
}
