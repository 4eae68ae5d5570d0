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

// Package compiler turns a parsed Previous schema into its resolved
// intermediate representation.
//
// Compilation runs three gates in order: name validation, type
// resolution, and cycle detection. Each gate fails fast on its first
// violated invariant; no gate aggregates errors.
package compiler

import (
	"go.previous-lang.org/previous/schema"
	"go.previous-lang.org/previous/syntax"
)

// Compile validates and resolves a parsed schema.
func Compile(parsed *syntax.Program) (*schema.Program, error) {
	if err := validate(parsed); err != nil {
		return nil, err
	}
	program, err := resolve(parsed)
	if err != nil {
		return nil, err
	}
	if err := checkCycles(program); err != nil {
		return nil, err
	}
	return program, nil
}

func validate(parsed *syntax.Program) error {
	resourceNames := make(map[string]struct{}, len(parsed.Resources))
	for _, resource := range parsed.Resources {
		if _, dup := resourceNames[resource.Name]; dup {
			return errDuplicateResourceName(resource.Name, resource.NameSpan())
		}
		resourceNames[resource.Name] = struct{}{}
	}

	for _, resource := range parsed.Resources {
		fieldNames := make(map[string]struct{}, len(resource.Fields))
		for _, field := range resource.Fields {
			if _, dup := fieldNames[field.Name]; dup {
				return errDuplicateFieldName(resource.Name, field.Name, field.NameSpan())
			}
			fieldNames[field.Name] = struct{}{}
		}
	}
	return nil
}

// resolver holds the name→index map for one resolution pass. The map is
// discarded when the pass finishes.
type resolver struct {
	resourceIx map[string]uint32
}

func resolve(parsed *syntax.Program) (*schema.Program, error) {
	r := &resolver{
		resourceIx: make(map[string]uint32, len(parsed.Resources)),
	}
	for ix, resource := range parsed.Resources {
		r.resourceIx[resource.Name] = uint32(ix)
	}

	program := &schema.Program{
		Resources: make([]schema.Resource, 0, len(parsed.Resources)),
	}
	for _, resource := range parsed.Resources {
		fields := make([]schema.Field, 0, len(resource.Fields))
		for _, field := range resource.Fields {
			fieldType, err := r.resolveType(field.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, schema.Field{
				Name:     field.Name,
				Type:     fieldType,
				Nullable: field.Nullable,
				Optional: field.Optional,
				Default:  resolveDefault(field.Default),
				Index:    field.Index,
			})
		}
		program.Resources = append(program.Resources, schema.Resource{
			Name:   resource.Name,
			Fields: fields,
		})
	}
	return program, nil
}

func (r *resolver) resolveType(parsedType *syntax.Type) (*schema.Type, error) {
	switch parsedType.Kind {
	case syntax.TYPE_PRIMITIVE:
		// Unreachable through the grammar, which only produces the three
		// primitive keywords, but hand-built syntax trees must still fail
		// cleanly.
		switch parsedType.Name {
		case "string":
			return schema.PrimitiveType(schema.Type_STRING), nil
		case "number":
			return schema.PrimitiveType(schema.Type_NUMBER), nil
		case "bool":
			return schema.PrimitiveType(schema.Type_BOOL), nil
		}
		return nil, errInvalidPrimitiveType(parsedType.Name, parsedType.Span())
	case syntax.TYPE_NAMED:
		// Declaration order is irrelevant; forward references are legal.
		ix, ok := r.resourceIx[parsedType.Name]
		if !ok {
			return nil, errUndefinedType(parsedType.Name, parsedType.Span())
		}
		return schema.ResourceRef(ix), nil
	case syntax.TYPE_LIST:
		elem, err := r.resolveType(parsedType.Elem)
		if err != nil {
			return nil, err
		}
		return schema.ListOf(elem), nil
	}
	panic("unreachable")
}

func resolveDefault(literal *syntax.Literal) *schema.Literal {
	if literal == nil {
		return nil
	}
	switch literal.Kind {
	case syntax.LIT_TEXT:
		return &schema.Literal{
			Kind: schema.Literal_STRING,
			Text: literal.Text,
		}
	case syntax.LIT_INT:
		return &schema.Literal{
			Kind:   schema.Literal_NUMBER,
			Number: literal.Int,
		}
	case syntax.LIT_BOOL:
		return &schema.Literal{
			Kind: schema.Literal_BOOL,
			Bool: literal.Bool,
		}
	}
	panic("unreachable")
}
