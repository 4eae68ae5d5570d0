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

package syntax

import (
	"fmt"
)

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_PAREN
	T_CLOSE_PAREN

	T_TEXT_LIT
	T_INT_LIT

	T_IDENT

	T_KW_RESOURCE
	T_KW_STRING
	T_KW_NUMBER
	T_KW_BOOL
	T_KW_NULLABLE
	T_KW_OPTIONAL
	T_KW_DEFAULT
	T_KW_LIST
	T_KW_TRUE
	T_KW_FALSE
)

func (k TokenKind) String() string {
	switch k {
	case T_EOF:
		return "EOF"
	case T_OPEN_CURL:
		return "OPEN_CURL"
	case T_CLOSE_CURL:
		return "CLOSE_CURL"
	case T_OPEN_PAREN:
		return "OPEN_PAREN"
	case T_CLOSE_PAREN:
		return "CLOSE_PAREN"
	case T_TEXT_LIT:
		return "TEXT_LIT"
	case T_INT_LIT:
		return "INT_LIT"
	case T_IDENT:
		return "IDENT"
	case T_KW_RESOURCE:
		return "KW_RESOURCE"
	case T_KW_STRING:
		return "KW_STRING"
	case T_KW_NUMBER:
		return "KW_NUMBER"
	case T_KW_BOOL:
		return "KW_BOOL"
	case T_KW_NULLABLE:
		return "KW_NULLABLE"
	case T_KW_OPTIONAL:
		return "KW_OPTIONAL"
	case T_KW_DEFAULT:
		return "KW_DEFAULT"
	case T_KW_LIST:
		return "KW_LIST"
	case T_KW_TRUE:
		return "KW_TRUE"
	case T_KW_FALSE:
		return "KW_FALSE"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

var keywords = map[string]TokenKind{
	"resource": T_KW_RESOURCE,
	"string":   T_KW_STRING,
	"number":   T_KW_NUMBER,
	"bool":     T_KW_BOOL,
	"nullable": T_KW_NULLABLE,
	"optional": T_KW_OPTIONAL,
	"default":  T_KW_DEFAULT,
	"list":     T_KW_LIST,
	"true":     T_KW_TRUE,
	"false":    T_KW_FALSE,
}

type Token struct {
	Kind  TokenKind
	Start uint32
	Len   uint32
}

func (t Token) Span() Span {
	return Span{
		start: t.Start,
		len:   t.Len,
	}
}

// Tokens is the eagerly scanned token list for one source buffer. The
// terminal token is always T_EOF.
type Tokens struct {
	src  []byte
	list []Token
}

// Tokenize scans the entire source buffer. Scanning cannot fail:
// unrecognized characters are skipped and malformed numbers are resolved
// to zero later, during parsing.
func Tokenize(src []byte) *Tokens {
	t := &Tokens{src: src}
	off := uint32(0)
	end := uint32(len(src))
	for off < end {
		c := src[off]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			off += 1
		case c == '{':
			t.push(T_OPEN_CURL, off, 1)
			off += 1
		case c == '}':
			t.push(T_CLOSE_CURL, off, 1)
			off += 1
		case c == '(':
			t.push(T_OPEN_PAREN, off, 1)
			off += 1
		case c == ')':
			t.push(T_CLOSE_PAREN, off, 1)
			off += 1
		case c == '"':
			off = t.nextTextLit(off)
		case c >= '0' && c <= '9':
			off = t.nextIntLit(off)
		case isIdentStart(c):
			off = t.nextIdent(off)
		default:
			// Not part of any token; dropped without error.
			off += 1
		}
	}
	t.push(T_EOF, end, 0)
	return t
}

func (t *Tokens) push(kind TokenKind, start, len uint32) {
	t.list = append(t.list, Token{
		Kind:  kind,
		Start: start,
		Len:   len,
	})
}

// At returns the ii-th token, clamping past-the-end reads to the EOF
// terminal.
func (t *Tokens) At(ii int) Token {
	if ii >= len(t.list) {
		return t.list[len(t.list)-1]
	}
	return t.list[ii]
}

func (t *Tokens) Len() int {
	return len(t.list)
}

// Text returns the raw source bytes of a token.
func (t *Tokens) Text(token Token) string {
	return string(t.src[token.Start : token.Start+token.Len])
}

// TextLitContent returns a text literal's bytes with the surrounding
// quotes removed. The closing quote may be missing when the literal ran
// to end of input.
func (t *Tokens) TextLitContent(token Token) string {
	raw := t.src[token.Start : token.Start+token.Len]
	raw = raw[1:]
	if len(raw) > 0 && raw[len(raw)-1] == '"' {
		raw = raw[:len(raw)-1]
	}
	return string(raw)
}

func (t *Tokens) nextTextLit(start uint32) uint32 {
	off := start + 1
	end := uint32(len(t.src))
	for off < end {
		if t.src[off] == '"' {
			off += 1
			break
		}
		off += 1
	}
	t.push(T_TEXT_LIT, start, off-start)
	return off
}

func (t *Tokens) nextIntLit(start uint32) uint32 {
	off := start
	end := uint32(len(t.src))
	for off < end && t.src[off] >= '0' && t.src[off] <= '9' {
		off += 1
	}
	t.push(T_INT_LIT, start, off-start)
	return off
}

func (t *Tokens) nextIdent(start uint32) uint32 {
	off := start
	end := uint32(len(t.src))
	for off < end && isIdentPart(t.src[off]) {
		off += 1
	}
	kind := T_IDENT
	if kw, ok := keywords[string(t.src[start:off])]; ok {
		kind = kw
	}
	t.push(kind, start, off-start)
	return off
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
