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

package codegen

import (
	"fmt"
	"strings"

	"go.previous-lang.org/previous/schema"
)

// tsBinaryReader is the runtime support class shared by every generated
// decoder. It mirrors the wire format: u32 and i64 are little-endian,
// bool and presence markers are single bytes.
const tsBinaryReader = `class BinaryReader {
  private buffer: Uint8Array;
  private offset: number;

  constructor(buffer: Uint8Array) {
    this.buffer = buffer;
    this.offset = 0;
  }

  readString(): string {
    const length = this.readU32();
    const bytes = this.buffer.slice(this.offset, this.offset + length);
    this.offset += length;
    return new TextDecoder().decode(bytes);
  }

  readNumber(): number {
    const view = new DataView(this.buffer.buffer, this.offset, 8);
    const value = view.getBigInt64(0, true); // little-endian
    this.offset += 8;
    return Number(value);
  }

  readBool(): boolean {
    const value = this.buffer[this.offset];
    this.offset += 1;
    return value === 1;
  }

  readU32(): number {
    const view = new DataView(this.buffer.buffer, this.offset, 4);
    const value = view.getUint32(0, true); // little-endian
    this.offset += 4;
    return value;
  }

  readByte(): number {
    const value = this.buffer[this.offset];
    this.offset += 1;
    return value;
  }
}
`

func typescriptClient(program *schema.Program) string {
	g := tsGenerator{program: program}
	g.buf.WriteString(fileHeader)
	g.buf.WriteString(tsBinaryReader)
	g.buf.WriteString("\n")
	for ix := range program.Resources {
		g.visitResource(&program.Resources[ix])
		g.buf.WriteString("\n")
	}
	return g.buf.String()
}

type tsGenerator struct {
	program *schema.Program
	buf     strings.Builder
}

func (g *tsGenerator) linef(format string, a ...any) {
	fmt.Fprintf(&g.buf, format, a...)
	g.buf.WriteString("\n")
}

func (g *tsGenerator) visitResource(resource *schema.Resource) {
	g.linef("export interface I%s {", resource.Name)
	for ix := range resource.Fields {
		field := &resource.Fields[ix]
		optional := ""
		if field.Optional || field.Nullable {
			optional = "?"
		}
		g.linef("  %s%s: %s;", field.Name, optional, g.typeName(field.Type))
	}
	g.linef("}")
	g.linef("")

	g.linef("export class %s {", resource.Name)
	g.linef("  private reader: BinaryReader;")
	g.linef("  private data: I%s;", resource.Name)
	g.linef("")
	g.linef("  constructor(buffer: Uint8Array) {")
	g.linef("    this.reader = new BinaryReader(buffer);")
	g.linef("    this.data = {} as I%s;", resource.Name)
	g.linef("    this.decode();")
	g.linef("  }")
	g.linef("")
	g.linef("  private decode(): void {")
	for ix := range resource.Fields {
		g.visitFieldDecode(&resource.Fields[ix])
	}
	g.linef("  }")
	g.linef("")
	for ix := range resource.Fields {
		field := &resource.Fields[ix]
		wide := ""
		if field.Optional || field.Nullable {
			wide = " | null | undefined"
		}
		g.linef("  get%s(): %s%s {", capitalize(field.Name), g.typeName(field.Type), wide)
		g.linef("    return this.data.%s;", field.Name)
		g.linef("  }")
		g.linef("")
	}
	g.linef("  toJSON(): I%s {", resource.Name)
	g.linef("    return this.data;")
	g.linef("  }")
	g.linef("}")
}

// visitFieldDecode emits the field wrapper handling. Absent decodes to
// undefined and null to null, matching the interface's widened getter
// types.
func (g *tsGenerator) visitFieldDecode(field *schema.Field) {
	if field.Optional {
		g.linef("    const isPresent = this.reader.readByte();")
		g.linef("    if (isPresent === 0) {")
		g.linef("      this.data.%s = undefined;", field.Name)
		g.linef("    } else {")
		g.linef("      this.data.%s = %s;", field.Name, g.readExpr(field.Type, "      "))
		g.linef("    }")
		return
	}
	if field.Nullable {
		g.linef("    const isNull = this.reader.readByte();")
		g.linef("    if (isNull === 0) {")
		g.linef("      this.data.%s = null;", field.Name)
		g.linef("    } else {")
		g.linef("      this.data.%s = %s;", field.Name, g.readExpr(field.Type, "      "))
		g.linef("    }")
		return
	}
	g.linef("    this.data.%s = %s;", field.Name, g.readExpr(field.Type, "    "))
}

func (g *tsGenerator) readExpr(fieldType *schema.Type, indent string) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return "this.reader.readString()"
	case schema.Type_NUMBER:
		return "this.reader.readNumber()"
	case schema.Type_BOOL:
		return "this.reader.readBool()"
	case schema.Type_LIST:
		inner := g.readExpr(fieldType.Elem, indent)
		return fmt.Sprintf(
			"(() => {\n%s  const count = this.reader.readU32();\n%s  const items = [];\n%s  for (let i = 0; i < count; i++) {\n%s    items.push(%s);\n%s  }\n%s  return items;\n%s})()",
			indent, indent, indent, indent, inner, indent, indent, indent)
	case schema.Type_RESOURCE:
		name := g.program.Resources[fieldType.Resource].Name
		return fmt.Sprintf("new %s(this.reader.buffer.slice(this.reader.offset))", name)
	}
	panic("unreachable")
}

func (g *tsGenerator) typeName(fieldType *schema.Type) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return "string"
	case schema.Type_NUMBER:
		return "number"
	case schema.Type_BOOL:
		return "boolean"
	case schema.Type_LIST:
		return g.typeName(fieldType.Elem) + "[]"
	case schema.Type_RESOURCE:
		return "I" + g.program.Resources[fieldType.Resource].Name
	}
	panic("unreachable")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
