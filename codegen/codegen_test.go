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

package codegen_test

import (
	"strings"
	"testing"

	"go.previous-lang.org/previous/codegen"
	"go.previous-lang.org/previous/compiler"
	"go.previous-lang.org/previous/internal/testutil"
	"go.previous-lang.org/previous/schema"
	"go.previous-lang.org/previous/syntax"
)

func compileSchema(t *testing.T, src string) *schema.Program {
	t.Helper()
	parsed, err := syntax.Parse([]byte(src))
	testutil.AssertNoError(t, err)
	program, err := compiler.Compile(parsed)
	testutil.AssertNoError(t, err)
	return program
}

const userSchema = `
resource User {
    string name
    number age
    nullable string nickname
    optional bool verified
    list number scores
}
`

func TestGenerate_TypeScript(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, userSchema)
	generated := codegen.Generate(program)
	ts := generated.TypeScriptClient

	testutil.ExpectTrue(t, strings.Contains(ts, "class BinaryReader {"))
	testutil.ExpectTrue(t, strings.Contains(ts, "export interface IUser {"))
	testutil.ExpectTrue(t, strings.Contains(ts, "export class User {"))
	testutil.ExpectTrue(t, strings.Contains(ts, "  name: string;"))
	testutil.ExpectTrue(t, strings.Contains(ts, "  age: number;"))
	testutil.ExpectTrue(t, strings.Contains(ts, "  nickname?: string;"))
	testutil.ExpectTrue(t, strings.Contains(ts, "  verified?: boolean;"))
	testutil.ExpectTrue(t, strings.Contains(ts, "  scores: number[];"))
	testutil.ExpectTrue(t, strings.Contains(ts, "getName(): string {"))
	testutil.ExpectTrue(t, strings.Contains(ts, "getNickname(): string | null | undefined {"))
	testutil.ExpectTrue(t, strings.Contains(ts, "toJSON(): IUser {"))
	testutil.ExpectTrue(t, strings.Contains(ts, "this.reader.readString()"))
	testutil.ExpectTrue(t, strings.Contains(ts, "const isNull = this.reader.readByte();"))
	testutil.ExpectTrue(t, strings.Contains(ts, "const isPresent = this.reader.readByte();"))
}

func TestGenerate_TypeScriptResourceRef(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `
resource Post {
    Author author
}

resource Author {
    string name
}
`)
	ts := codegen.Generate(program).TypeScriptClient
	testutil.ExpectTrue(t, strings.Contains(ts, "  author: IAuthor;"))
	testutil.ExpectTrue(t, strings.Contains(ts, "new Author(this.reader.buffer.slice(this.reader.offset))"))
}

func TestGenerate_Rust(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, userSchema)
	rs := codegen.Generate(program).RustServer

	testutil.ExpectTrue(t, strings.Contains(rs, "pub struct User {"))
	testutil.ExpectTrue(t, strings.Contains(rs, "    pub name: String,"))
	testutil.ExpectTrue(t, strings.Contains(rs, "    pub age: i64,"))
	testutil.ExpectTrue(t, strings.Contains(rs, "    pub nickname: Option<String>,"))
	testutil.ExpectTrue(t, strings.Contains(rs, "    pub verified: Option<bool>,"))
	testutil.ExpectTrue(t, strings.Contains(rs, "    pub scores: Vec<i64>,"))
	testutil.ExpectTrue(t, strings.Contains(rs, "pub fn new() -> Self {"))
	testutil.ExpectTrue(t, strings.Contains(rs, "pub fn name(mut self, value: String) -> Self {"))
	testutil.ExpectTrue(t, strings.Contains(rs, "pub fn encode(&self, ir_program: &IRProgram) -> Result<Vec<u8>, String> {"))
	testutil.ExpectTrue(t, strings.Contains(rs, `ir_program.get_resource_index("User").unwrap();`))
	testutil.ExpectTrue(t, strings.Contains(rs,
		"self.nickname.as_ref().map(|v| Value::String(v.clone())).unwrap_or(Value::Null)"))
	testutil.ExpectTrue(t, strings.Contains(rs,
		"self.verified.as_ref().map(|v| Value::Bool(*v)).unwrap_or(Value::Absent)"))
	testutil.ExpectTrue(t, strings.Contains(rs,
		"Value::List(self.scores.iter().map(|item| Value::Number(*item)).collect())"))
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, userSchema)
	first := codegen.Generate(program)
	for ii := 0; ii < 5; ii++ {
		next := codegen.Generate(program)
		testutil.ExpectNoDiff(t, first.TypeScriptClient, next.TypeScriptClient)
		testutil.ExpectNoDiff(t, first.RustServer, next.RustServer)
	}
}
