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

// Package prevbin implements the Previous binary wire format.
//
// The layout is fixed, unversioned, and uncompressed:
//
//	string      u32 length (little-endian), then raw bytes
//	number      i64, little-endian
//	bool        one byte, 0x00 or 0x01
//	list<T>     u32 count (little-endian), then count encodings of T
//	resource    field encodings concatenated in declaration order
//	optional    one presence byte (0x00 absent / 0x01 present) before
//	            the value; the value is omitted when absent
//	nullable    one presence byte (0x00 null / 0x01 present) before
//	            the value; the value is omitted when null
//
// Resource encodings carry no length prefix and no field tags: field
// boundaries are known only through the schema. When a field is both
// optional and nullable, the optional byte is written first.
package prevbin

import (
	"fmt"

	"go.previous-lang.org/previous/schema"
)

type ValueKind uint8

const (
	V_STRING ValueKind = iota
	V_NUMBER
	V_BOOL
	V_LIST
	V_RESOURCE
	V_NULL
	V_ABSENT
)

func (k ValueKind) String() string {
	switch k {
	case V_STRING:
		return "string"
	case V_NUMBER:
		return "number"
	case V_BOOL:
		return "bool"
	case V_LIST:
		return "list"
	case V_RESOURCE:
		return "resource"
	case V_NULL:
		return "null"
	case V_ABSENT:
		return "absent"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// Value is the runtime representation of one encodable value. Exactly
// one payload field is meaningful per kind. Null and Absent are legal
// only under a nullable or optional field wrapper; the raw value encoder
// rejects them.
type Value struct {
	Kind   ValueKind
	Str    string
	Num    int64
	Bool   bool
	Items  []Value
	Fields []FieldValue
}

func String(s string) Value {
	return Value{Kind: V_STRING, Str: s}
}

func Number(n int64) Value {
	return Value{Kind: V_NUMBER, Num: n}
}

func Bool(b bool) Value {
	return Value{Kind: V_BOOL, Bool: b}
}

func List(items ...Value) Value {
	return Value{Kind: V_LIST, Items: items}
}

func Resource(fields ...FieldValue) Value {
	return Value{Kind: V_RESOURCE, Fields: fields}
}

func Null() Value {
	return Value{Kind: V_NULL}
}

func Absent() Value {
	return Value{Kind: V_ABSENT}
}

// FieldValue pairs one value with the field flags a producer believes
// apply to it. The encoder trusts the schema's flags, not these; they
// exist so value trees are self-describing to humans and tests.
type FieldValue struct {
	Name     string
	Value    Value
	Optional bool
	Nullable bool
}

// EncodeResource encodes a resource value against the named resource's
// descriptor.
func EncodeResource(program *schema.Program, name string, value Value) ([]byte, error) {
	ix, ok := program.ResourceIndex(name)
	if !ok {
		return nil, errUnknownResource(name)
	}
	e := NewEncoder(program)
	if err := e.EncodeValue(value, schema.ResourceRef(ix)); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DecodeResource decodes a full buffer as a value of the named resource.
// Trailing bytes are an error.
func DecodeResource(program *schema.Program, name string, buf []byte) (Value, error) {
	ix, ok := program.ResourceIndex(name)
	if !ok {
		return Value{}, errUnknownResource(name)
	}
	d := NewDecoder(program, buf)
	value, err := d.DecodeValue(schema.ResourceRef(ix))
	if err != nil {
		return Value{}, err
	}
	if err := d.Finish(); err != nil {
		return Value{}, err
	}
	return value, nil
}
