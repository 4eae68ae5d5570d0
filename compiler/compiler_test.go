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

package compiler_test

import (
	"testing"

	"go.previous-lang.org/previous/compiler"
	"go.previous-lang.org/previous/internal/testutil"
	"go.previous-lang.org/previous/schema"
	"go.previous-lang.org/previous/syntax"
)

func compile(t *testing.T, src string) (*schema.Program, error) {
	t.Helper()
	parsed, err := syntax.Parse([]byte(src))
	testutil.AssertNoError(t, err)
	return compiler.Compile(parsed)
}

func TestCompile_Simple(t *testing.T) {
	t.Parallel()

	src := `
resource User {
    string name
    number age
    nullable bool verified
    optional string email
}
`
	program, err := compile(t, src)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 1, len(program.Resources))

	user := program.Resource("User")
	testutil.ExpectTrue(t, user != nil)
	testutil.ExpectEq(t, 4, len(user.Fields))

	testutil.ExpectEq(t, "name", user.Fields[0].Name)
	testutil.ExpectEq(t, schema.Type_STRING, user.Fields[0].Type.Kind)
	testutil.ExpectEq(t, schema.Type_NUMBER, user.Fields[1].Type.Kind)

	testutil.ExpectTrue(t, user.Fields[2].Nullable)
	testutil.ExpectFalse(t, user.Fields[2].Optional)
	testutil.ExpectTrue(t, user.Fields[3].Optional)

	for ii, field := range user.Fields {
		testutil.ExpectEq(t, uint32(ii), field.Index)
	}
}

func TestCompile_ListField(t *testing.T) {
	t.Parallel()

	src := `
resource Names {
    list string values
}
`
	program, err := compile(t, src)
	testutil.AssertNoError(t, err)

	field := program.Resource("Names").Fields[0]
	testutil.ExpectEq(t, schema.Type_LIST, field.Type.Kind)
	testutil.ExpectEq(t, schema.Type_STRING, field.Type.Elem.Kind)
}

func TestCompile_ResourceRefs(t *testing.T) {
	t.Parallel()

	// A field may reference a resource declared later.
	src := `
resource Post {
    Author author
    list Author reviewers
}

resource Author {
    string name
}
`
	program, err := compile(t, src)
	testutil.AssertNoError(t, err)

	authorIx, ok := program.ResourceIndex("Author")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, uint32(1), authorIx)

	post := program.Resource("Post")
	testutil.ExpectEq(t, schema.Type_RESOURCE, post.Fields[0].Type.Kind)
	testutil.ExpectEq(t, authorIx, post.Fields[0].Type.Resource)
	testutil.ExpectEq(t, schema.Type_RESOURCE, post.Fields[1].Type.Elem.Kind)
	testutil.ExpectEq(t, authorIx, post.Fields[1].Type.Elem.Resource)
}

func TestCompile_Defaults(t *testing.T) {
	t.Parallel()

	src := `
resource Config {
    default("anon") string name
    default(3) number retries
    default(false) bool debug
}
`
	program, err := compile(t, src)
	testutil.AssertNoError(t, err)

	fields := program.Resource("Config").Fields
	testutil.ExpectEq(t, schema.Literal_STRING, fields[0].Default.Kind)
	testutil.ExpectEq(t, "anon", fields[0].Default.Text)
	testutil.ExpectEq(t, schema.Literal_NUMBER, fields[1].Default.Kind)
	testutil.ExpectEq(t, int64(3), fields[1].Default.Number)
	testutil.ExpectEq(t, schema.Literal_BOOL, fields[2].Default.Kind)
	testutil.ExpectFalse(t, fields[2].Default.Bool)
}

func TestCompile_DuplicateResourceName(t *testing.T) {
	t.Parallel()

	_, err := compile(t, `
resource User { string name }
resource User { number id }
`)
	diag := testutil.ExpectErrCode(t, err, 3000)
	testutil.ExpectMatch(t, `"User"`, diag.Message())
}

func TestCompile_DuplicateFieldName(t *testing.T) {
	t.Parallel()

	_, err := compile(t, `
resource User {
    string name
    number name
}
`)
	diag := testutil.ExpectErrCode(t, err, 3001)
	testutil.ExpectMatch(t, `"name"`, diag.Message())
}

func TestCompile_UndefinedType(t *testing.T) {
	t.Parallel()

	_, err := compile(t, `
resource Post {
    Author author
}
`)
	diag := testutil.ExpectErrCode(t, err, 3002)
	testutil.ExpectMatch(t, `Undefined type "Author"`, diag.Message())
}

func TestCompile_InvalidPrimitiveType(t *testing.T) {
	t.Parallel()

	// Unreachable through the grammar; exercised with a hand-built tree.
	parsed := &syntax.Program{
		Resources: []*syntax.Resource{{
			Name: "User",
			Fields: []*syntax.Field{{
				Name: "score",
				Type: &syntax.Type{
					Kind: syntax.TYPE_PRIMITIVE,
					Name: "float",
				},
			}},
		}},
	}
	_, err := compiler.Compile(parsed)
	testutil.ExpectErrCode(t, err, 3003)
}

func TestCompile_SelfCycle(t *testing.T) {
	t.Parallel()

	_, err := compile(t, `
resource Node {
    Node next
}
`)
	diag := testutil.ExpectErrCode(t, err, 3100)
	testutil.ExpectEq(t, "Cyclic resource dependency: Node → Node", diag.Message())
}

func TestCompile_MutualCycle(t *testing.T) {
	t.Parallel()

	_, err := compile(t, `
resource A {
    B b
}

resource B {
    A a
}
`)
	diag := testutil.ExpectErrCode(t, err, 3100)
	testutil.ExpectEq(t, "Cyclic resource dependency: A → B → A", diag.Message())
}

func TestCompile_CycleThroughList(t *testing.T) {
	t.Parallel()

	_, err := compile(t, `
resource Tree {
    list Tree children
}
`)
	testutil.ExpectErrCode(t, err, 3100)
}

func TestCompile_AcyclicDiamond(t *testing.T) {
	t.Parallel()

	// Shared references are fine as long as no path loops.
	src := `
resource Root {
    Left left
    Right right
}

resource Left {
    Leaf leaf
}

resource Right {
    Leaf leaf
}

resource Leaf {
    string tag
}
`
	_, err := compile(t, src)
	testutil.AssertNoError(t, err)
}

func TestCompile_DeterministicCycleReport(t *testing.T) {
	t.Parallel()

	// Two independent cycles; traversal from the first declaration
	// always reports the first one.
	src := `
resource A {
    B b
}

resource B {
    A a
}

resource C {
    D d
}

resource D {
    C c
}
`
	for ii := 0; ii < 10; ii++ {
		_, err := compile(t, src)
		diag := testutil.ExpectErrCode(t, err, 3100)
		testutil.ExpectEq(t, "Cyclic resource dependency: A → B → A", diag.Message())
	}
}
