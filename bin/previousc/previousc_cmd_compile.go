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
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"go.previous-lang.org/previous/encoding/prevtext"
	"go.previous-lang.org/previous/schema"
)

type cmdCompile struct {
	outPath string
	format  string
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile SCHEMA",
		summary: "Compile a schema and write its resolved form",
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outPath, "output", "o", "", "output path (default stdout)")
	flags.StringVarP(&cmd.format, "format", "f", "yaml", "output format: yaml, json, or text")
}

// Serializable view of the resolved schema. Types print as canonical
// source text, with resource references resolved to names.
type irField struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
	Index    uint32 `json:"index" yaml:"index"`
}

type irResource struct {
	Name   string    `json:"name" yaml:"name"`
	Fields []irField `json:"fields" yaml:"fields"`
}

type irDoc struct {
	Resources []irResource `json:"resources" yaml:"resources"`
}

func (cmd *cmdCompile) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: previousc compile SCHEMA")
		return 1
	}
	program := loadProgram(argv[0])
	if program == nil {
		return 1
	}

	var output []byte
	switch cmd.format {
	case "text":
		output = []byte(prevtext.Encode(program))
	case "yaml":
		data, err := yaml.Marshal(irView(program))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
			return 1
		}
		output = data
	case "json":
		data, err := json.MarshalIndent(irView(program), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
			return 1
		}
		output = append(data, '\n')
	default:
		fmt.Fprintf(os.Stderr, "Unsupported output format %q\n", cmd.format)
		return 1
	}

	return writeOutput(cmd.outPath, output)
}

func irView(program *schema.Program) *irDoc {
	doc := &irDoc{
		Resources: make([]irResource, 0, len(program.Resources)),
	}
	for ix := range program.Resources {
		resource := &program.Resources[ix]
		fields := make([]irField, 0, len(resource.Fields))
		for _, field := range resource.Fields {
			fields = append(fields, irField{
				Name:     field.Name,
				Type:     typeText(program, field.Type),
				Nullable: field.Nullable,
				Optional: field.Optional,
				Default:  defaultText(field.Default),
				Index:    field.Index,
			})
		}
		doc.Resources = append(doc.Resources, irResource{
			Name:   resource.Name,
			Fields: fields,
		})
	}
	return doc
}

func typeText(program *schema.Program, fieldType *schema.Type) string {
	switch fieldType.Kind {
	case schema.Type_STRING:
		return "string"
	case schema.Type_NUMBER:
		return "number"
	case schema.Type_BOOL:
		return "bool"
	case schema.Type_LIST:
		return "list " + typeText(program, fieldType.Elem)
	case schema.Type_RESOURCE:
		return program.Resources[fieldType.Resource].Name
	}
	panic("unreachable")
}

func defaultText(literal *schema.Literal) string {
	if literal == nil {
		return ""
	}
	switch literal.Kind {
	case schema.Literal_STRING:
		return fmt.Sprintf("%q", literal.Text)
	case schema.Literal_NUMBER:
		return fmt.Sprintf("%d", literal.Number)
	case schema.Literal_BOOL:
		return fmt.Sprintf("%t", literal.Bool)
	}
	panic("unreachable")
}
