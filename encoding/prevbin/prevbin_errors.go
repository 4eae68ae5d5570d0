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
	"fmt"

	"go.previous-lang.org/previous/schema"
)

// Encoding and decoding errors carry no source span: by the time a value
// reaches the wire codec there is no schema text to point at.
type Error struct {
	code    uint32
	message string
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

func errTypeMismatch(valueKind ValueKind, valueType *schema.Type) error {
	return &Error{
		code:    4000,
		message: fmt.Sprintf("Type mismatch: cannot encode %s value as type %s", valueKind, valueType),
	}
}

func errFieldCountMismatch(resource string, want, got int) error {
	return &Error{
		code:    4001,
		message: fmt.Sprintf("Field count mismatch: resource %q has %d fields, got %d", resource, want, got),
	}
}

func errNullOutsideWrapper() error {
	return &Error{
		code:    4002,
		message: "Null value outside a nullable field",
	}
}

func errAbsentOutsideWrapper() error {
	return &Error{
		code:    4003,
		message: "Absent value outside an optional field",
	}
}

func errInvalidResourceIndex(ix uint32, count int) error {
	return &Error{
		code:    4004,
		message: fmt.Sprintf("Resource index %d out of range (%d resources)", ix, count),
	}
}

func errUnknownResource(name string) error {
	return &Error{
		code:    4005,
		message: fmt.Sprintf("Unknown resource %q", name),
	}
}

func errStringTooLong(length int) error {
	return &Error{
		code:    4006,
		message: fmt.Sprintf("String length %d exceeds u32 range", length),
	}
}

func errListTooLong(count int) error {
	return &Error{
		code:    4007,
		message: fmt.Sprintf("List count %d exceeds u32 range", count),
	}
}

func errTruncated(what string, need, have int) error {
	return &Error{
		code:    4100,
		message: fmt.Sprintf("Truncated input: need %d more bytes for %s, have %d", need, what, have),
	}
}

func errTrailingBytes(count int) error {
	return &Error{
		code:    4101,
		message: fmt.Sprintf("Trailing input: %d bytes remain after decoding", count),
	}
}

func errInvalidBoolByte(b byte) error {
	return &Error{
		code:    4102,
		message: fmt.Sprintf("Invalid bool byte 0x%02X", b),
	}
}

func errInvalidPresenceByte(b byte) error {
	return &Error{
		code:    4103,
		message: fmt.Sprintf("Invalid presence byte 0x%02X", b),
	}
}
