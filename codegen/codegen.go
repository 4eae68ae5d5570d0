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

// Package codegen emits client and server code for a compiled Previous
// schema. The TypeScript client decodes wire-format buffers; the Rust
// server builds values and encodes them. Output is deterministic:
// resources are emitted in declaration order and fields in
// field-declaration order.
package codegen

import (
	"go.previous-lang.org/previous/schema"
)

const fileHeader = "// Generated by Previous Compiler\n" +
	"// DO NOT EDIT - This file is auto-generated\n\n"

type Output struct {
	TypeScriptClient string
	RustServer       string
}

func Generate(program *schema.Program) Output {
	return Output{
		TypeScriptClient: typescriptClient(program),
		RustServer:       rustServer(program),
	}
}
