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
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"go.previous-lang.org/previous/compiler"
	"go.previous-lang.org/previous/schema"
	"go.previous-lang.org/previous/syntax"
)

func init() {
	color.NoColor = color.NoColor || !isatty.IsTerminal(os.Stderr.Fd())
}

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	posLabel   = color.New(color.Bold).SprintFunc()
)

// diagnostic is the shape shared by syntax and compiler errors.
type diagnostic interface {
	error
	Code() uint32
	Message() string
	Span() syntax.Span
}

// printDiagnostic reports a schema error on stderr with the source
// position resolved to line and column. Zero-length spans (whole-schema
// errors, such as dependency cycles) print without a position.
func printDiagnostic(srcPath string, src []byte, err error) {
	diag, ok := err.(diagnostic)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return
	}
	span := diag.Span()
	if span.Len() == 0 && span.Start() == 0 {
		fmt.Fprintf(os.Stderr, "%s %s E%d: %s\n",
			errorLabel("error:"), posLabel(srcPath+":"), diag.Code(), diag.Message())
		return
	}
	line, col := lineCol(src, span.Start())
	fmt.Fprintf(os.Stderr, "%s %s E%d: %s\n",
		errorLabel("error:"),
		posLabel(fmt.Sprintf("%s:%d:%d:", srcPath, line, col)),
		diag.Code(), diag.Message())
}

// lineCol converts a byte offset to 1-based line and column numbers.
func lineCol(src []byte, offset uint32) (line, col int) {
	line, col = 1, 1
	for ii := uint32(0); ii < offset && ii < uint32(len(src)); ii++ {
		if src[ii] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// loadProgram reads, parses, and compiles one schema file. Errors are
// printed and signalled by a nil program.
func loadProgram(srcPath string) *schema.Program {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return nil
	}
	logger.Debug("read schema", zap.String("path", srcPath), zap.Int("bytes", len(src)))

	parsed, err := syntax.Parse(src)
	if err != nil {
		printDiagnostic(srcPath, src, err)
		return nil
	}
	logger.Debug("parsed schema", zap.Int("resources", len(parsed.Resources)))

	program, err := compiler.Compile(parsed)
	if err != nil {
		printDiagnostic(srcPath, src, err)
		return nil
	}
	logger.Debug("compiled schema", zap.Int("resources", len(program.Resources)))
	return program
}

func writeOutput(outPath string, output []byte) int {
	if outPath == "" {
		if _, err := os.Stdout.Write(output); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
			return 1
		}
		return 0
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(outPath, openFlags, 0o666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		return 1
	}
	_, writeErr := fp.Write(output)
	closeErr := fp.Close()
	if writeErr != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), writeErr)
		return 1
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), closeErr)
		return 1
	}
	return 0
}
