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

package testutil

import (
	"testing"
)

// Coded is implemented by the diagnostic error types of every package in
// this module.
type Coded interface {
	error
	Code() uint32
	Message() string
}

// ExpectErrCode fails unless err is a coded diagnostic with the given
// code. It returns the diagnostic so callers can make further assertions
// on the message.
func ExpectErrCode(t *testing.T, err error, code uint32) Coded {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected (E%d), got: nil", code)
	}
	coded, ok := err.(Coded)
	if !ok {
		t.Fatalf("Expected (E%d), got uncoded error: %v", code, err)
	}
	if coded.Code() != code {
		t.Fatalf("Expected (E%d), got: %v", code, err)
	}
	return coded
}
