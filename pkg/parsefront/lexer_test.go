// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parsefront

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/source"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()

	lex := NewLexer(source.NewFile("test.b65", []byte(src)))

	var toks []Token

	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}

		toks = append(toks, tok)

		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "let x = foo_bar")

	want := []Kind{TokLet, TokIdent, TokAssign, TokIdent, TokEOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected kind %d, got %d (%q)", i, k, toks[i].Kind, toks[i].Text)
		}
	}

	if toks[1].Text != "x" || toks[3].Text != "foo_bar" {
		t.Fatalf("unexpected identifier text: %+v", toks)
	}
}

func TestLexerIntLiteralsDecimalAndHex(t *testing.T) {
	toks := scanAll(t, "10 0xFF 0x10")

	for i, want := range []string{"10", "0xFF", "0x10"} {
		if toks[i].Kind != TokIntLiteral || toks[i].Text != want {
			t.Fatalf("token %d: expected int literal %q, got %+v", i, want, toks[i])
		}
	}
}

func TestLexerStringLiteralWithEscapes(t *testing.T) {
	toks := scanAll(t, `"hello\nworld"`)

	if toks[0].Kind != TokStringLiteral {
		t.Fatalf("expected string literal, got %+v", toks[0])
	}

	if toks[0].Text != "hello\nworld" {
		t.Fatalf("expected escape to be processed, got %q", toks[0].Text)
	}
}

func TestLexerUnterminatedStringIsSyntaxError(t *testing.T) {
	lex := NewLexer(source.NewFile("test.b65", []byte(`"unterminated`)))

	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected an error")
	}

	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}

	if se.Code != source.CodeUnterminatedString {
		t.Fatalf("expected CodeUnterminatedString, got %v", se.Code)
	}
}

func TestLexerTwoCharOperators(t *testing.T) {
	toks := scanAll(t, "== != <= >= && || << >>")

	want := []Kind{TokEq, TokNe, TokLe, TokGe, TokAndAnd, TokOrOr, TokShl, TokShr, TokEOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected kind %d, got %d", i, k, toks[i].Kind)
		}
	}
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	toks := scanAll(t, "let // a comment\nx /* block */ = 1")

	want := []Kind{TokLet, TokIdent, TokAssign, TokIntLiteral, TokEOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected kind %d, got %d", i, k, toks[i].Kind)
		}
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	lex := NewLexer(source.NewFile("test.b65", []byte("$")))

	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected an error")
	}

	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}

	if se.Code != source.CodeUnexpectedToken {
		t.Fatalf("expected CodeUnexpectedToken, got %v", se.Code)
	}
}
