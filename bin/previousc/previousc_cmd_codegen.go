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
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go.previous-lang.org/previous/codegen"
)

type cmdCodegen struct {
	outDir string
}

func (*cmdCodegen) help() *commandHelp {
	return &commandHelp{
		usage:   "codegen SCHEMA",
		summary: "Generate TypeScript client and Rust server code",
	}
}

func (cmd *cmdCodegen) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outDir, "output", "o", "", "output directory")
}

func (cmd *cmdCodegen) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: previousc codegen SCHEMA")
		return 1
	}
	if cmd.outDir == "" {
		fmt.Fprintln(os.Stderr, "No output directory specified (set --output=)")
		return 1
	}

	program := loadProgram(argv[0])
	if program == nil {
		return 1
	}

	generated := codegen.Generate(program)
	outputs := []struct {
		name    string
		content string
	}{
		{"client.ts", generated.TypeScriptClient},
		{"server.rs", generated.RustServer},
	}

	if err := os.MkdirAll(cmd.outDir, 0o777); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	for _, output := range outputs {
		outPath := filepath.Join(cmd.outDir, output.name)
		if err := os.WriteFile(outPath, []byte(output.content), 0o666); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
			return 1
		}
		logger.Debug("wrote generated code",
			zap.String("path", outPath),
			zap.Int("bytes", len(output.content)))
	}
	return 0
}
