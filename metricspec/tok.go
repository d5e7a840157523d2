// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricspec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError is an error produced by parsing a malformed metric
// spec.
type SyntaxError struct {
	Spec string // The original spec string
	Off  int    // Byte offset of the error in Spec
	Msg  string // Error message
}

func (e *SyntaxError) Error() string {
	// Translate byte offset to a rune offset.
	pos := 0
	for i, r := range e.Spec {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("metric spec: %s\n\t%s\n\t%*s^", e.Msg, e.Spec, pos, "")
}

type errorTracker struct {
	qOrig string
	err   *SyntaxError
}

func (t *errorTracker) error(q string, msg string) {
	off := len(t.qOrig) - len(q)
	if t.err == nil {
		t.err = &SyntaxError{t.qOrig, off, msg}
	}
}

// A tok is a single token in the metric spec syntax.
type tok struct {
	// Kind specifies the category of this token. It is 'w' for a
	// bare word, 'q' for a quoted word, 'l' for a list literal, an
	// operator character (':' or ','), or 0 for the end-of-string
	// token.
	Kind byte
	Off  int      // Byte offset of the beginning of this token
	Tok  string   // Literal token contents; quoted words are unquoted
	List []string // Elements of a list literal
}

type tokenizer struct {
	q    string
	errt *errorTracker
}

func newTokenizer(q string) tokenizer {
	return tokenizer{q, &errorTracker{q, nil}}
}

func isSpace(q string) int {
	if q[0] == ' ' {
		return 1
	}
	r, size := utf8.DecodeRuneInString(q)
	if unicode.IsSpace(r) {
		return size
	}
	return 0
}

func (t *tokenizer) skipSpace() {
	for len(t.q) > 0 {
		n := isSpace(t.q)
		if n == 0 {
			return
		}
		t.q = t.q[n:]
	}
}

// keyOrOp returns the next key or operator token. Keys are bare
// words that stop at ':' or ','.
func (t *tokenizer) keyOrOp() (tok, tokenizer) {
	t.skipSpace()
	if len(t.q) == 0 {
		return t.tok(0, "", "")
	}
	switch t.q[0] {
	case ':', ',':
		return t.tok(t.q[0], t.q[:1], t.q[1:])
	}
	end := strings.IndexAny(t.q, ":,")
	if end < 0 {
		end = len(t.q)
	}
	return t.tok('w', strings.TrimRightFunc(t.q[:end], unicode.IsSpace), t.q[end:])
}

// value returns the next value token. A value may be a quoted word, a
// list literal, or a bare word running up to the next top-level ','.
func (t *tokenizer) value() (tok, tokenizer) {
	t.skipSpace()
	if len(t.q) == 0 {
		return t.tok(0, "", "")
	}
	switch t.q[0] {
	case '\'', '"':
		return t.quotedWord()
	case '[':
		return t.list()
	case ',':
		return t.tok(',', t.q[:1], t.q[1:])
	}
	end := strings.IndexByte(t.q, ',')
	if end < 0 {
		end = len(t.q)
	}
	return t.tok('w', strings.TrimRightFunc(t.q[:end], unicode.IsSpace), t.q[end:])
}

// end asserts that t has reached the end of the token stream. If it
// has not, it returns a tokenizer that reports an error.
func (t *tokenizer) end() tokenizer {
	if tok, _ := t.keyOrOp(); tok.Kind != 0 {
		_, t2 := t.error("unexpected " + strconv.Quote(tok.Tok))
		return t2
	}
	return *t
}

func (t *tokenizer) tok(kind byte, token string, rest string) (tok, tokenizer) {
	off := len(t.errt.qOrig) - len(t.q)
	return tok{kind, off, token, nil}, tokenizer{rest, t.errt}
}

func (t *tokenizer) error(msg string) (tok, tokenizer) {
	t.errt.error(t.q, msg)
	// Move to the end.
	return t.tok(0, "", "")
}

// quotedWord consumes a word in single or double quotes. Only the
// quote character itself and the backslash may be escaped.
func (t *tokenizer) quotedWord() (tok, tokenizer) {
	quote := t.q[0]
	var buf strings.Builder
	for pos := 1; pos < len(t.q); pos++ {
		switch c := t.q[pos]; c {
		case quote:
			return t.tok('q', buf.String(), t.q[pos+1:])
		case '\\':
			if pos+1 < len(t.q) && (t.q[pos+1] == quote || t.q[pos+1] == '\\') {
				pos++
				buf.WriteByte(t.q[pos])
				continue
			}
			return t.error("bad escape sequence")
		default:
			buf.WriteByte(c)
		}
	}
	return t.error("missing end quote")
}

// list consumes a bracketed list literal such as ['a', "b"]. Elements
// may be quoted or bare words.
func (t *tokenizer) list() (tok, tokenizer) {
	start := *t
	rest := tokenizer{t.q[1:], t.errt}
	var elems []string
	for {
		rest.skipSpace()
		if len(rest.q) == 0 {
			return start.error("missing \"]\"")
		}
		if rest.q[0] == ']' && len(elems) == 0 {
			rest.q = rest.q[1:]
			break
		}
		var elem tok
		switch rest.q[0] {
		case '\'', '"':
			elem, rest = rest.quotedWord()
			if elem.Kind == 0 {
				return elem, rest
			}
		default:
			end := strings.IndexAny(rest.q, ",]")
			if end < 0 {
				return start.error("missing \"]\"")
			}
			word := strings.TrimRightFunc(rest.q[:end], unicode.IsSpace)
			if word == "" {
				return rest.error("expected list element")
			}
			elem, rest = rest.tok('w', word, rest.q[end:])
		}
		elems = append(elems, elem.Tok)

		// Consume "," or "]".
		rest.skipSpace()
		if len(rest.q) == 0 {
			return start.error("missing \"]\"")
		}
		if rest.q[0] == ']' {
			rest.q = rest.q[1:]
			break
		}
		if rest.q[0] != ',' {
			return rest.error("list elements must be separated by \",\"")
		}
		rest.q = rest.q[1:]
	}
	tk, next := t.tok('l', t.q[:len(t.q)-len(rest.q)], rest.q)
	tk.List = elems
	return tk, next
}

// quoteWord returns a string that tokenizes as the value s.
func quoteWord(s string) string {
	if s == "" || strings.ContainsAny(s, ",'\"[") || strings.TrimSpace(s) != s {
		return strconv.Quote(s)
	}
	return s
}
