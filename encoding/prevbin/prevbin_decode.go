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

	"go.previous-lang.org/previous/schema"
)

// Decoder consumes a wire-format buffer against a schema. The format has
// no self-description, so decoding is driven entirely by the type passed
// to DecodeValue. A decoder instance serves one decode operation.
type Decoder struct {
	program *schema.Program
	buf     []byte
	off     int
}

func NewDecoder(program *schema.Program, buf []byte) *Decoder {
	return &Decoder{
		program: program,
		buf:     buf,
	}
}

// Finish reports an error if input remains after the decoded value.
func (d *Decoder) Finish() error {
	if d.off != len(d.buf) {
		return errTrailingBytes(len(d.buf) - d.off)
	}
	return nil
}

func (d *Decoder) DecodeValue(valueType *schema.Type) (Value, error) {
	switch valueType.Kind {
	case schema.Type_STRING:
		return d.decodeString()
	case schema.Type_NUMBER:
		return d.decodeNumber()
	case schema.Type_BOOL:
		return d.decodeBool()
	case schema.Type_LIST:
		return d.decodeList(valueType.Elem)
	case schema.Type_RESOURCE:
		return d.decodeResource(valueType.Resource)
	}
	panic("unreachable")
}

// DecodeField reads the optional and nullable wrappers, then the value.
// Presence bytes are strict: anything other than 0x00 or 0x01 is an
// error, so every value has exactly one encoding.
func (d *Decoder) DecodeField(schemaField *schema.Field) (Value, error) {
	if schemaField.Optional {
		present, err := d.readPresence()
		if err != nil {
			return Value{}, err
		}
		if !present {
			return Absent(), nil
		}
	}
	if schemaField.Nullable {
		present, err := d.readPresence()
		if err != nil {
			return Value{}, err
		}
		if !present {
			return Null(), nil
		}
	}
	return d.DecodeValue(schemaField.Type)
}

func (d *Decoder) decodeString() (Value, error) {
	length, err := d.readUint32("string length")
	if err != nil {
		return Value{}, err
	}
	content, err := d.take(int(length), "string content")
	if err != nil {
		return Value{}, err
	}
	return String(string(content)), nil
}

func (d *Decoder) decodeNumber() (Value, error) {
	raw, err := d.take(8, "number")
	if err != nil {
		return Value{}, err
	}
	return Number(int64(binary.LittleEndian.Uint64(raw))), nil
}

func (d *Decoder) decodeBool() (Value, error) {
	raw, err := d.take(1, "bool")
	if err != nil {
		return Value{}, err
	}
	switch raw[0] {
	case 0x00:
		return Bool(false), nil
	case 0x01:
		return Bool(true), nil
	}
	return Value{}, errInvalidBoolByte(raw[0])
}

func (d *Decoder) decodeList(elemType *schema.Type) (Value, error) {
	count, err := d.readUint32("list count")
	if err != nil {
		return Value{}, err
	}
	// Pre-sizing is capped so a hostile count cannot force a huge
	// allocation before any element bytes are read.
	items := make([]Value, 0, min(int(count), 64))
	for ii := uint32(0); ii < count; ii++ {
		item, err := d.DecodeValue(elemType)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return Value{Kind: V_LIST, Items: items}, nil
}

func (d *Decoder) decodeResource(resourceIx uint32) (Value, error) {
	if resourceIx >= uint32(len(d.program.Resources)) {
		return Value{}, errInvalidResourceIndex(resourceIx, len(d.program.Resources))
	}
	resource := &d.program.Resources[resourceIx]

	fields := make([]FieldValue, 0, len(resource.Fields))
	for ix := range resource.Fields {
		schemaField := &resource.Fields[ix]
		value, err := d.DecodeField(schemaField)
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, FieldValue{
			Name:     schemaField.Name,
			Value:    value,
			Optional: schemaField.Optional,
			Nullable: schemaField.Nullable,
		})
	}
	return Value{Kind: V_RESOURCE, Fields: fields}, nil
}

func (d *Decoder) readUint32(what string) (uint32, error) {
	raw, err := d.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func (d *Decoder) readPresence() (bool, error) {
	raw, err := d.take(1, "presence byte")
	if err != nil {
		return false, err
	}
	switch raw[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	}
	return false, errInvalidPresenceByte(raw[0])
}

func (d *Decoder) take(n int, what string) ([]byte, error) {
	if len(d.buf)-d.off < n {
		return nil, errTruncated(what, n, len(d.buf)-d.off)
	}
	raw := d.buf[d.off : d.off+n]
	d.off += n
	return raw, nil
}
