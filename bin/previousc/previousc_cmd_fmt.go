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

	"github.com/spf13/pflag"

	"go.previous-lang.org/previous/encoding/prevtext"
)

type cmdFormat struct {
	write bool
}

func (*cmdFormat) help() *commandHelp {
	return &commandHelp{
		usage:   "fmt SCHEMA",
		summary: "Rewrite a schema in canonical form",
	}
}

func (cmd *cmdFormat) flags(flags *pflag.FlagSet) {
	flags.BoolVarP(&cmd.write, "write", "w", false, "write result back to the source file")
}

func (cmd *cmdFormat) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: previousc fmt SCHEMA")
		return 1
	}
	srcPath := argv[0]

	program := loadProgram(srcPath)
	if program == nil {
		return 1
	}

	formatted := prevtext.Encode(program)
	if cmd.write {
		return writeOutput(srcPath, []byte(formatted))
	}
	return writeOutput("", []byte(formatted))
}
