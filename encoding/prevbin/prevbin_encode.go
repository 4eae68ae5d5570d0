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

package prevbin

import (
	"encoding/binary"
	"math"

	"go.previous-lang.org/previous/schema"
)

// Encoder appends wire-format encodings to one growable buffer. An
// encoder instance serves one encode operation and is not safe for
// concurrent use.
type Encoder struct {
	program *schema.Program
	buf     []byte
}

func NewEncoder(program *schema.Program) *Encoder {
	return &Encoder{
		program: program,
	}
}

// Bytes returns the accumulated encoding.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// EncodeValue appends the encoding of value against valueType. Each
// (value kind, type kind) pairing maps to exactly one routine; any other
// pairing is a type mismatch.
func (e *Encoder) EncodeValue(value Value, valueType *schema.Type) error {
	switch {
	case value.Kind == V_STRING && valueType.Kind == schema.Type_STRING:
		return e.encodeString(value.Str)
	case value.Kind == V_NUMBER && valueType.Kind == schema.Type_NUMBER:
		e.encodeNumber(value.Num)
		return nil
	case value.Kind == V_BOOL && valueType.Kind == schema.Type_BOOL:
		e.encodeBool(value.Bool)
		return nil
	case value.Kind == V_LIST && valueType.Kind == schema.Type_LIST:
		return e.encodeList(value.Items, valueType.Elem)
	case value.Kind == V_RESOURCE && valueType.Kind == schema.Type_RESOURCE:
		return e.encodeResource(value.Fields, valueType.Resource)
	case value.Kind == V_NULL:
		// Null is consumed by the nullable field wrapper and never
		// reaches the raw value encoder.
		return errNullOutsideWrapper()
	case value.Kind == V_ABSENT:
		return errAbsentOutsideWrapper()
	}
	return errTypeMismatch(value.Kind, valueType)
}

// EncodeField applies the optional and nullable wrappers before the
// value encoding. The optional check runs first; a null under an
// optional-and-nullable field encodes as present-then-null.
func (e *Encoder) EncodeField(field FieldValue, schemaField *schema.Field) error {
	if schemaField.Optional {
		if field.Value.Kind == V_ABSENT {
			e.buf = append(e.buf, 0x00)
			return nil
		}
		e.buf = append(e.buf, 0x01)
	}
	if schemaField.Nullable {
		if field.Value.Kind == V_NULL {
			e.buf = append(e.buf, 0x00)
			return nil
		}
		e.buf = append(e.buf, 0x01)
	}
	return e.EncodeValue(field.Value, schemaField.Type)
}

func (e *Encoder) encodeString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return errStringTooLong(len(s))
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(len(s)))
	e.buf = append(e.buf, s...)
	return nil
}

func (e *Encoder) encodeNumber(n int64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(n))
}

func (e *Encoder) encodeBool(b bool) {
	if b {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x00)
	}
}

func (e *Encoder) encodeList(items []Value, elemType *schema.Type) error {
	if uint64(len(items)) > math.MaxUint32 {
		return errListTooLong(len(items))
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(len(items)))
	for _, item := range items {
		if err := e.EncodeValue(item, elemType); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeResource(fields []FieldValue, resourceIx uint32) error {
	if resourceIx >= uint32(len(e.program.Resources)) {
		return errInvalidResourceIndex(resourceIx, len(e.program.Resources))
	}
	resource := &e.program.Resources[resourceIx]

	// Strict positional correspondence: the producer must supply exactly
	// one value per declared field, in declaration order.
	if len(fields) != len(resource.Fields) {
		return errFieldCountMismatch(resource.Name, len(resource.Fields), len(fields))
	}
	for ix := range fields {
		if err := e.EncodeField(fields[ix], &resource.Fields[ix]); err != nil {
			return err
		}
	}
	return nil
}
