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

// Package syntax tokenizes and parses Previous schema source text.
//
// Parsing is recursive descent with one token of lookahead, no
// backtracking, and no error recovery: the first violated expectation
// aborts the parse.
package syntax

import (
	"strconv"
)

// Parse converts schema source text into a syntax tree.
func Parse(src []byte) (*Program, error) {
	p := &parser{
		tokens: Tokenize(src),
	}
	return p.parseProgram()
}

type parser struct {
	tokens *Tokens
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens.At(p.pos)
}

func (p *parser) next() Token {
	token := p.tokens.At(p.pos)
	if token.Kind != T_EOF {
		p.pos += 1
	}
	return token
}

func (p *parser) sigil(kind TokenKind) error {
	token := p.peek()
	if token.Kind != kind {
		return errExpectedSigil(kind, token.Kind, p.tokens.Text(token), token.Span())
	}
	p.next()
	return nil
}

func (p *parser) parseProgram() (*Program, error) {
	program := &Program{}
	for p.peek().Kind != T_EOF {
		resource, err := p.parseResource()
		if err != nil {
			return nil, err
		}
		program.Resources = append(program.Resources, resource)
	}
	return program, nil
}

func (p *parser) parseResource() (*Resource, error) {
	start := p.peek()
	if start.Kind != T_KW_RESOURCE {
		return nil, errExpectedKeywordResource(start.Kind, p.tokens.Text(start), start.Span())
	}
	p.next()

	nameToken := p.peek()
	if nameToken.Kind != T_IDENT {
		return nil, errExpectedResourceName(nameToken.Kind, p.tokens.Text(nameToken), nameToken.Span())
	}
	p.next()

	name := p.tokens.Text(nameToken)
	if name[0] < 'A' || name[0] > 'Z' {
		return nil, errResourceNameNotPascalCase(name, nameToken.Span())
	}

	if err := p.sigil(T_OPEN_CURL); err != nil {
		return nil, err
	}

	var fields []*Field
	for p.peek().Kind != T_CLOSE_CURL && p.peek().Kind != T_EOF {
		field, err := p.parseField(uint32(len(fields)))
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	closeToken := p.peek()
	if err := p.sigil(T_CLOSE_CURL); err != nil {
		return nil, err
	}

	return &Resource{
		Name:     name,
		Fields:   fields,
		span:     NewSpan(start.Start, closeToken.Start+closeToken.Len-start.Start),
		nameSpan: nameToken.Span(),
	}, nil
}

func (p *parser) parseField(index uint32) (*Field, error) {
	start := p.peek()
	field := &Field{
		Index: index,
	}

	// Attributes may repeat in any order; repeated flags are idempotent
	// and a repeated default(...) overwrites the previous literal.
attributes:
	for {
		switch p.peek().Kind {
		case T_KW_NULLABLE:
			field.Nullable = true
			p.next()
		case T_KW_OPTIONAL:
			field.Optional = true
			p.next()
		case T_KW_DEFAULT:
			p.next()
			if err := p.sigil(T_OPEN_PAREN); err != nil {
				return nil, err
			}
			literal, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			if err := p.sigil(T_CLOSE_PAREN); err != nil {
				return nil, err
			}
			field.Default = literal
		default:
			break attributes
		}
	}

	fieldType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	field.Type = fieldType

	nameToken := p.peek()
	if nameToken.Kind != T_IDENT {
		return nil, errExpectedFieldName(nameToken.Kind, p.tokens.Text(nameToken), nameToken.Span())
	}
	p.next()

	field.Name = p.tokens.Text(nameToken)
	field.span = NewSpan(start.Start, nameToken.Start+nameToken.Len-start.Start)
	field.nameSpan = nameToken.Span()
	return field, nil
}

func (p *parser) parseType() (*Type, error) {
	token := p.peek()
	switch token.Kind {
	case T_KW_STRING, T_KW_NUMBER, T_KW_BOOL:
		p.next()
		return &Type{
			Kind: TYPE_PRIMITIVE,
			Name: p.tokens.Text(token),
			span: token.Span(),
		}, nil
	case T_KW_LIST:
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elemSpan := elem.Span()
		return &Type{
			Kind: TYPE_LIST,
			Elem: elem,
			span: NewSpan(token.Start, elemSpan.End()-token.Start),
		}, nil
	case T_IDENT:
		p.next()
		return &Type{
			Kind: TYPE_NAMED,
			Name: p.tokens.Text(token),
			span: token.Span(),
		}, nil
	}
	return nil, errExpectedType(token.Kind, p.tokens.Text(token), token.Span())
}

func (p *parser) parseLiteral() (*Literal, error) {
	token := p.peek()
	switch token.Kind {
	case T_TEXT_LIT:
		p.next()
		return &Literal{
			Kind: LIT_TEXT,
			Text: p.tokens.TextLitContent(token),
			span: token.Span(),
		}, nil
	case T_INT_LIT:
		p.next()
		// Overflow and other conversion failures resolve to zero; the
		// literal grammar guarantees a digit run, not a representable
		// value.
		value, err := strconv.ParseInt(p.tokens.Text(token), 10, 64)
		if err != nil {
			value = 0
		}
		return &Literal{
			Kind: LIT_INT,
			Int:  value,
			span: token.Span(),
		}, nil
	case T_KW_TRUE:
		p.next()
		return &Literal{
			Kind: LIT_BOOL,
			Bool: true,
			span: token.Span(),
		}, nil
	case T_KW_FALSE:
		p.next()
		return &Literal{
			Kind: LIT_BOOL,
			span: token.Span(),
		}, nil
	}
	return nil, errExpectedLiteral(token.Kind, p.tokens.Text(token), token.Span())
}
