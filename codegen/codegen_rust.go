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

func rustServer(program *schema.Program) string {
	g := rustGenerator{program: program}
	g.buf.WriteString(fileHeader)
	g.linef("use previous::{Value, FieldValue, BinaryEncoder, IRType, IRProgram};")
	g.linef("")
	for ix := range program.Resources {
		g.visitResource(&program.Resources[ix])
		g.buf.WriteString("\n")
	}
	return g.buf.String()
}

type rustGenerator struct {
	program *schema.Program
	buf     strings.Builder
}

func (g *rustGenerator) linef(format string, a ...any) {
	fmt.Fprintf(&g.buf, format, a...)
	g.buf.WriteString("\n")
}

func (g *rustGenerator) visitResource(resource *schema.Resource) {
	g.linef("#[derive(Debug, Clone)]")
	g.linef("pub struct %s {", resource.Name)
	for ix := range resource.Fields {
		field := &resource.Fields[ix]
		fieldType := g.typeName(field.Type)
		if field.Optional || field.Nullable {
			fieldType = fmt.Sprintf("Option<%s>", fieldType)
		}
		g.linef("    pub %s: %s,", field.Name, fieldType)
	}
	g.linef("}")
	g.linef("")

	g.linef("impl %s {", resource.Name)

	g.linef("    pub fn new() -> Self {")
	g.linef("        %s {", resource.Name)
	for ix := range resource.Fields {
		field := &resource.Fields[ix]
		if field.Optional || field.Nullable {
			g.linef("            %s: None,", field.Name)
		} else {
			g.linef("            %s: %s,", field.Name, g.defaultExpr(field.Type))
		}
	}
	g.linef("        }")
	g.linef("    }")
	g.linef("")

	// Chained setters, one per field.
	for ix := range resource.Fields {
		field := &resource.Fields[ix]
		paramType := g.typeName(field.Type)
		if field.Optional || field.Nullable {
			paramType = fmt.Sprintf("Option<%s>", paramType)
		}
		g.linef("    pub fn %s(mut self, value: %s) -> Self {", field.Name, paramType)
		g.linef("        self.%s = value;", field.Name)
		g.linef("        self")
		g.linef("    }")
		g.linef("")
	}

	g.linef("    pub fn encode(&self, ir_program: &IRProgram) -> Result<Vec<u8>, String> {")
	g.linef("        let value = self.to_value();")
	g.linef("        let mut encoder = BinaryEncoder::new();")
	g.linef("        let resource_idx = ir_program.get_resource_index(%q).unwrap();", resource.Name)
	g.linef("        encoder.encode_value(&value, &IRType::ResourceRef(resource_idx), ir_program)?;")
	g.linef("        Ok(encoder.finish())")
	g.linef("    }")
	g.linef("")

	g.linef("    fn to_value(&self) -> Value {")
	g.linef("        Value::Resource(vec![")
	for ix := range resource.Fields {
		field := &resource.Fields[ix]
		g.linef("            FieldValue {")
		g.linef("                name: %q.to_string(),", field.Name)
		g.linef("                value: %s,", g.fieldValueExpr(field))
		g.linef("                is_optional: %t,", field.Optional)
		g.linef("                is_nullable: %t,", field.Nullable)
		g.linef("            },")
	}
	g.linef("        ])")
	g.linef("    }")

	g.linef("}")
}

// fieldValueExpr converts a struct field into a runtime Value. Wrapped
// fields map through Option, with the receiver rebound to the borrowed
// inner value.
func (g *rustGenerator) fieldValueExpr(field *schema.Field) string {
	if field.Optional {
		inner := g.valueExpr(field.Type, "v", true)
		return fmt.Sprintf("self.%s.as_ref().map(|v| %s).unwrap_or(Value::Absent)", field.Name, inner)
	}
	if field.Nullable {
		inner := g.valueExpr(field.Type, "v", true)
		return fmt.Sprintf("self.%s.as_ref().map(|v| %s).unwrap_or(Value::Null)", field.Name, inner)
	}
	return g.valueExpr(field.Type, fmt.Sprintf("self.%s", field.Name), false)
}

// valueExpr builds the conversion for one receiver expression. borrowed
// marks receivers that are references (Option::map closures, list
// iterator items) and so need clone or deref instead of move.
func (g *rustGenerator) valueExpr(fieldType *schema.Type, receiver string, borrowed bool) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return fmt.Sprintf("Value::String(%s.clone())", receiver)
	case schema.Type_NUMBER:
		if borrowed {
			return fmt.Sprintf("Value::Number(*%s)", receiver)
		}
		return fmt.Sprintf("Value::Number(%s)", receiver)
	case schema.Type_BOOL:
		if borrowed {
			return fmt.Sprintf("Value::Bool(*%s)", receiver)
		}
		return fmt.Sprintf("Value::Bool(%s)", receiver)
	case schema.Type_LIST:
		item := g.listItemExpr(fieldType.Elem)
		return fmt.Sprintf("Value::List(%s.iter().map(|item| %s).collect())", receiver, item)
	case schema.Type_RESOURCE:
		return fmt.Sprintf("%s.to_value()", receiver)
	}
	panic("unreachable")
}

func (g *rustGenerator) listItemExpr(elemType *schema.Type) string {
	switch elemType.Kind {
	case schema.Type_STRING:
		return "Value::String(item.clone())"
	case schema.Type_NUMBER:
		return "Value::Number(*item)"
	case schema.Type_BOOL:
		return "Value::Bool(*item)"
	case schema.Type_LIST:
		return "item.clone()"
	case schema.Type_RESOURCE:
		return "item.to_value()"
	}
	panic("unreachable")
}

func (g *rustGenerator) typeName(fieldType *schema.Type) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return "String"
	case schema.Type_NUMBER:
		return "i64"
	case schema.Type_BOOL:
		return "bool"
	case schema.Type_LIST:
		return fmt.Sprintf("Vec<%s>", g.typeName(fieldType.Elem))
	case schema.Type_RESOURCE:
		return g.program.Resources[fieldType.Resource].Name
	}
	panic("unreachable")
}

func (g *rustGenerator) defaultExpr(fieldType *schema.Type) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return "String::new()"
	case schema.Type_NUMBER:
		return "0"
	case schema.Type_BOOL:
		return "false"
	case schema.Type_LIST:
		return "Vec::new()"
	case schema.Type_RESOURCE:
		return fmt.Sprintf("%s::new()", g.program.Resources[fieldType.Resource].Name)
	}
	panic("unreachable")
}
