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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go.previous-lang.org/previous/encoding/prevbin"
	"go.previous-lang.org/previous/schema"
)

type cmdEncode struct {
	schemaPath string
	resource   string
	outPath    string
}

func (*cmdEncode) help() *commandHelp {
	return &commandHelp{
		usage:   "encode VALUES",
		summary: "Encode a YAML value document to the binary wire format",
	}
}

func (cmd *cmdEncode) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.schemaPath, "schema", "s", "", "schema file")
	flags.StringVarP(&cmd.resource, "resource", "r", "", "resource to encode as")
	flags.StringVarP(&cmd.outPath, "output", "o", "", "output path (default stdout)")
}

func (cmd *cmdEncode) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: previousc encode --schema=SCHEMA --resource=NAME VALUES")
		return 1
	}
	if cmd.schemaPath == "" {
		fmt.Fprintln(os.Stderr, "No schema specified (set --schema=)")
		return 1
	}
	if cmd.resource == "" {
		fmt.Fprintln(os.Stderr, "No resource specified (set --resource=)")
		return 1
	}

	program := loadProgram(cmd.schemaPath)
	if program == nil {
		return 1
	}
	ix, ok := program.ResourceIndex(cmd.resource)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s schema has no resource %q\n", errorLabel("error:"), cmd.resource)
		return 1
	}

	valuesBuf, err := os.ReadFile(argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	var doc any
	if err := yaml.Unmarshal(valuesBuf, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}

	value, err := valueFromYAML(program, schema.ResourceRef(ix), doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}

	encoded, err := prevbin.EncodeResource(program, cmd.resource, value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	logger.Debug("encoded value",
		zap.String("resource", cmd.resource),
		zap.Int("bytes", len(encoded)))
	return writeOutput(cmd.outPath, encoded)
}

// valueFromYAML converts a decoded YAML document into a runtime value
// tree, guided by the schema type. Resource documents are YAML mappings
// keyed by field name; a missing key maps to Absent and an explicit null
// to Null, with the field wrappers left to reject misplaced ones.
func valueFromYAML(program *schema.Program, valueType *schema.Type, doc any) (prevbin.Value, error) {
	if doc == nil {
		return prevbin.Null(), nil
	}
	switch valueType.Kind {
	case schema.Type_STRING:
		s, ok := doc.(string)
		if !ok {
			return prevbin.Value{}, fmt.Errorf("expected a string, got %T", doc)
		}
		return prevbin.String(s), nil
	case schema.Type_NUMBER:
		switch n := doc.(type) {
		case int:
			return prevbin.Number(int64(n)), nil
		case int64:
			return prevbin.Number(n), nil
		case uint64:
			return prevbin.Number(int64(n)), nil
		case float64:
			return prevbin.Number(int64(n)), nil
		}
		return prevbin.Value{}, fmt.Errorf("expected a number, got %T", doc)
	case schema.Type_BOOL:
		b, ok := doc.(bool)
		if !ok {
			return prevbin.Value{}, fmt.Errorf("expected a bool, got %T", doc)
		}
		return prevbin.Bool(b), nil
	case schema.Type_LIST:
		items, ok := doc.([]any)
		if !ok {
			return prevbin.Value{}, fmt.Errorf("expected a sequence, got %T", doc)
		}
		converted := make([]prevbin.Value, 0, len(items))
		for _, item := range items {
			value, err := valueFromYAML(program, valueType.Elem, item)
			if err != nil {
				return prevbin.Value{}, err
			}
			converted = append(converted, value)
		}
		return prevbin.List(converted...), nil
	case schema.Type_RESOURCE:
		mapping, ok := doc.(map[string]any)
		if !ok {
			return prevbin.Value{}, fmt.Errorf("expected a mapping, got %T", doc)
		}
		resource := &program.Resources[valueType.Resource]
		fields := make([]prevbin.FieldValue, 0, len(resource.Fields))
		for ix := range resource.Fields {
			schemaField := &resource.Fields[ix]
			fieldDoc, present := mapping[schemaField.Name]
			var value prevbin.Value
			if !present {
				value = prevbin.Absent()
			} else {
				converted, err := valueFromYAML(program, schemaField.Type, fieldDoc)
				if err != nil {
					return prevbin.Value{}, fmt.Errorf("field %q: %w", schemaField.Name, err)
				}
				value = converted
			}
			fields = append(fields, prevbin.FieldValue{
				Name:     schemaField.Name,
				Value:    value,
				Optional: schemaField.Optional,
				Nullable: schemaField.Nullable,
			})
		}
		for key := range mapping {
			known := false
			for ix := range resource.Fields {
				if resource.Fields[ix].Name == key {
					known = true
					break
				}
			}
			if !known {
				return prevbin.Value{}, fmt.Errorf("resource %q has no field %q", resource.Name, key)
			}
		}
		return prevbin.Resource(fields...), nil
	}
	panic("unreachable")
}
