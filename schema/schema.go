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

// Package schema defines the resolved intermediate representation of a
// Previous schema. Resources live in an index-addressed list and refer to
// each other by position, never by pointer, so an (illegal) cyclic schema
// can still be constructed and inspected before being rejected.
package schema

import (
	"fmt"
)

type TypeKind uint8

const (
	Type_STRING TypeKind = iota
	Type_NUMBER
	Type_BOOL
	Type_RESOURCE
	Type_LIST
)

func (k TypeKind) String() string {
	switch k {
	case Type_STRING:
		return "string"
	case Type_NUMBER:
		return "number"
	case Type_BOOL:
		return "bool"
	case Type_RESOURCE:
		return "resource"
	case Type_LIST:
		return "list"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// Type is a resolved field type. Exactly one shape is valid per kind:
// Elem is set for Type_LIST, Resource is set for Type_RESOURCE.
type Type struct {
	Kind     TypeKind
	Elem     *Type
	Resource uint32
}

func PrimitiveType(kind TypeKind) *Type {
	switch kind {
	case Type_STRING, Type_NUMBER, Type_BOOL:
		return &Type{Kind: kind}
	}
	panic("schema.PrimitiveType: not a primitive kind")
}

func ResourceRef(index uint32) *Type {
	return &Type{
		Kind:     Type_RESOURCE,
		Resource: index,
	}
}

func ListOf(elem *Type) *Type {
	return &Type{
		Kind: Type_LIST,
		Elem: elem,
	}
}

func (t *Type) String() string {
	switch t.Kind {
	case Type_LIST:
		return "list " + t.Elem.String()
	case Type_RESOURCE:
		return fmt.Sprintf("resource#%d", t.Resource)
	default:
		return t.Kind.String()
	}
}

type LiteralKind uint8

const (
	Literal_STRING LiteralKind = iota
	Literal_NUMBER
	Literal_BOOL
)

// Literal is a default value attached to a field. It is inert metadata:
// never type-checked against the field type and never applied during
// encoding.
type Literal struct {
	Kind   LiteralKind
	Text   string
	Number int64
	Bool   bool
}

type Field struct {
	Name     string
	Type     *Type
	Nullable bool
	Optional bool
	Default  *Literal

	// Index is the zero-based declaration position, fixed at parse time.
	// It is also the field's encoding position on the wire.
	Index uint32
}

type Resource struct {
	Name   string
	Fields []Field
}

type Program struct {
	Resources []Resource
}

// ResourceIndex returns the position of the named resource.
func (p *Program) ResourceIndex(name string) (uint32, bool) {
	for ix := range p.Resources {
		if p.Resources[ix].Name == name {
			return uint32(ix), true
		}
	}
	return 0, false
}

// Resource returns the named resource, or nil.
func (p *Program) Resource(name string) *Resource {
	for ix := range p.Resources {
		if p.Resources[ix].Name == name {
			return &p.Resources[ix]
		}
	}
	return nil
}
