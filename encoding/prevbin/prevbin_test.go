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

package prevbin_test

import (
	"testing"

	"go.previous-lang.org/previous/compiler"
	"go.previous-lang.org/previous/encoding/prevbin"
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

func TestEncode_String(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.String("hi")},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{2, 0, 0, 0, 'h', 'i'}, buf)
}

func TestEncode_EmptyString(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.String("")},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0, 0, 0, 0}, buf)
}

func TestEncode_Number(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { number n }`)

	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "n", Value: prevbin.Number(1)},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, buf)

	buf, err = prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "n", Value: prevbin.Number(-1)},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, buf)
}

func TestEncode_Bool(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { bool flag }`)

	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "flag", Value: prevbin.Bool(true)},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{1}, buf)

	buf, err = prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "flag", Value: prevbin.Bool(false)},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0}, buf)
}

func TestEncode_List(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { list number ns }`)

	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "ns", Value: prevbin.List()},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0, 0, 0, 0}, buf)

	buf, err = prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "ns", Value: prevbin.List(
			prevbin.Number(1),
			prevbin.Number(2),
		)},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{
		2, 0, 0, 0,
		1, 0, 0, 0, 0, 0, 0, 0,
		2, 0, 0, 0, 0, 0, 0, 0,
	}, buf)
}

func TestEncode_NestedResource(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `
resource Post {
    string title
    Author author
}

resource Author {
    string name
}
`)
	buf, err := prevbin.EncodeResource(program, "Post", prevbin.Resource(
		prevbin.FieldValue{Name: "title", Value: prevbin.String("x")},
		prevbin.FieldValue{Name: "author", Value: prevbin.Resource(
			prevbin.FieldValue{Name: "name", Value: prevbin.String("y")},
		)},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{
		1, 0, 0, 0, 'x',
		1, 0, 0, 0, 'y',
	}, buf)
}

func TestEncode_OptionalAbsent(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { optional string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Absent(), Optional: true},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0x00}, buf)
}

func TestEncode_OptionalPresent(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { optional string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.String("a"), Optional: true},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0x01, 1, 0, 0, 0, 'a'}, buf)
}

func TestEncode_NullableNull(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { nullable string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Null(), Nullable: true},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0x00}, buf)
}

func TestEncode_OptionalNullableNull(t *testing.T) {
	t.Parallel()

	// The optional wrapper byte comes first: present, then null.
	program := compileSchema(t, `resource Msg { optional nullable string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Null(), Optional: true, Nullable: true},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0x01, 0x00}, buf)
}

func TestEncode_OptionalNullableAbsent(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { optional nullable string text }`)
	buf, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Absent(), Optional: true, Nullable: true},
	))
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0x00}, buf)
}

func TestEncode_TypeMismatch(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)
	_, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Number(42)},
	))
	diag := testutil.ExpectErrCode(t, err, 4000)
	testutil.ExpectMatch(t, `cannot encode number value as type string`, diag.Message())
}

func TestEncode_FieldCountMismatch(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string a string b }`)
	_, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "a", Value: prevbin.String("x")},
	))
	diag := testutil.ExpectErrCode(t, err, 4001)
	testutil.ExpectMatch(t, `"Msg" has 2 fields, got 1`, diag.Message())
}

func TestEncode_NullOutsideNullable(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)
	_, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Null()},
	))
	testutil.ExpectErrCode(t, err, 4002)
}

func TestEncode_AbsentOutsideOptional(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)
	_, err := prevbin.EncodeResource(program, "Msg", prevbin.Resource(
		prevbin.FieldValue{Name: "text", Value: prevbin.Absent()},
	))
	testutil.ExpectErrCode(t, err, 4003)
}

func TestEncode_UnknownResource(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)
	_, err := prevbin.EncodeResource(program, "Nope", prevbin.Resource())
	testutil.ExpectErrCode(t, err, 4005)
}

func TestDecode_Roundtrip(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `
resource User {
    string name
    number age
    nullable string nickname
    optional bool verified
    list number scores
}
`)
	value := prevbin.Resource(
		prevbin.FieldValue{Name: "name", Value: prevbin.String("ada")},
		prevbin.FieldValue{Name: "age", Value: prevbin.Number(36)},
		prevbin.FieldValue{Name: "nickname", Value: prevbin.Null(), Nullable: true},
		prevbin.FieldValue{Name: "verified", Value: prevbin.Bool(true), Optional: true},
		prevbin.FieldValue{Name: "scores", Value: prevbin.List(
			prevbin.Number(10),
			prevbin.Number(-3),
		)},
	)
	buf, err := prevbin.EncodeResource(program, "User", value)
	testutil.AssertNoError(t, err)

	decoded, err := prevbin.DecodeResource(program, "User", buf)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, prevbin.V_RESOURCE, decoded.Kind)
	testutil.ExpectEq(t, 5, len(decoded.Fields))

	testutil.ExpectEq(t, "ada", decoded.Fields[0].Value.Str)
	testutil.ExpectEq(t, int64(36), decoded.Fields[1].Value.Num)
	testutil.ExpectEq(t, prevbin.V_NULL, decoded.Fields[2].Value.Kind)
	testutil.ExpectEq(t, prevbin.V_BOOL, decoded.Fields[3].Value.Kind)
	testutil.ExpectTrue(t, decoded.Fields[3].Value.Bool)
	testutil.ExpectEq(t, 2, len(decoded.Fields[4].Value.Items))
	testutil.ExpectEq(t, int64(-3), decoded.Fields[4].Value.Items[1].Num)
}

func TestDecode_AbsentField(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { optional string text }`)
	decoded, err := prevbin.DecodeResource(program, "Msg", []byte{0x00})
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, prevbin.V_ABSENT, decoded.Fields[0].Value.Kind)
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { string text }`)

	_, err := prevbin.DecodeResource(program, "Msg", []byte{2, 0, 0})
	testutil.ExpectErrCode(t, err, 4100)

	_, err = prevbin.DecodeResource(program, "Msg", []byte{2, 0, 0, 0, 'h'})
	testutil.ExpectErrCode(t, err, 4100)
}

func TestDecode_TrailingBytes(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { bool flag }`)
	_, err := prevbin.DecodeResource(program, "Msg", []byte{0x01, 0xAA})
	testutil.ExpectErrCode(t, err, 4101)
}

func TestDecode_InvalidBoolByte(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { bool flag }`)
	_, err := prevbin.DecodeResource(program, "Msg", []byte{0x02})
	testutil.ExpectErrCode(t, err, 4102)
}

func TestDecode_InvalidPresenceByte(t *testing.T) {
	t.Parallel()

	program := compileSchema(t, `resource Msg { optional bool flag }`)
	_, err := prevbin.DecodeResource(program, "Msg", []byte{0x02})
	testutil.ExpectErrCode(t, err, 4103)
}
