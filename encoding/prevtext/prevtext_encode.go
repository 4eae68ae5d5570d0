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

// Package prevtext renders a resolved schema back to canonical Previous
// source text. Formatting is total: attributes print in the fixed order
// nullable, optional, default, fields are indented four spaces, and
// resources are separated by one blank line. Comments do not survive
// parsing, so the output contains none.
package prevtext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.previous-lang.org/previous/schema"
)

func Encode(program *schema.Program) string {
	var buf strings.Builder
	EncodeTo(program, &buf)
	return buf.String()
}

func EncodeTo(program *schema.Program, w io.Writer) error {
	e := encoder{program: program, w: w}
	for ix := range program.Resources {
		if ix > 0 {
			e.line("")
		}
		e.visitResource(&program.Resources[ix])
	}
	return e.err
}

type encoder struct {
	program *schema.Program
	w       io.Writer
	err     error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visitResource(resource *schema.Resource) {
	e.linef("resource %s {", resource.Name)
	for ix := range resource.Fields {
		e.visitField(&resource.Fields[ix])
	}
	e.line("}")
}

func (e *encoder) visitField(field *schema.Field) {
	var buf strings.Builder
	buf.WriteString("    ")
	if field.Nullable {
		buf.WriteString("nullable ")
	}
	if field.Optional {
		buf.WriteString("optional ")
	}
	if field.Default != nil {
		fmt.Fprintf(&buf, "default(%s) ", literalText(field.Default))
	}
	buf.WriteString(e.typeText(field.Type))
	buf.WriteByte(' ')
	buf.WriteString(field.Name)
	e.line(buf.String())
}

func (e *encoder) typeText(fieldType *schema.Type) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return "string"
	case schema.Type_NUMBER:
		return "number"
	case schema.Type_BOOL:
		return "bool"
	case schema.Type_LIST:
		return "list " + e.typeText(fieldType.Elem)
	case schema.Type_RESOURCE:
		return e.program.Resources[fieldType.Resource].Name
	}
	panic("unreachable")
}

func literalText(literal *schema.Literal) string {
	switch literal.Kind {
	case schema.Literal_STRING:
		return `"` + literal.Text + `"`
	case schema.Literal_NUMBER:
		return strconv.FormatInt(literal.Number, 10)
	case schema.Literal_BOOL:
		if literal.Bool {
			return "true"
		}
		return "false"
	}
	panic("unreachable")
}
