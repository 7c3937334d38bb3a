// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "github.com/oprisk/leaf-kit"

// keywordParam is an unvalued control token.
type keywordParam struct {
	kw   Keyword
	name string // set only when kw == KeywordOther
}

// NewKeywordParam builds a keyword parameter.
func NewKeywordParam(kw Keyword) Parameter {
	return &keywordParam{kw: kw}
}

// NewReducedKeywordParam builds a keyword parameter with eager decay:
// the boolean keywords collapse to value literals, nil to the void-nil
// literal, and self to the self variable. A non-evaluable keyword does
// not reduce and is returned as an ordinary keyword parameter.
func NewReducedKeywordParam(kw Keyword) Parameter {
	p := &keywordParam{kw: kw}
	if decayed := p.decay(); decayed != nil {
		return decayed
	}
	return p
}

// NewOtherKeywordParam builds a non-evaluable keyword token named name,
// for host tag libraries that need to thread control tokens through the
// AST without this core ever reducing them.
func NewOtherKeywordParam(name string) Parameter {
	return &keywordParam{kw: KeywordOther, name: name}
}

func (p *keywordParam) ParamKind() ParameterKind { return KindKeyword }

func (p *keywordParam) Resolved() bool { return p.kw.IsEvaluable() }

func (p *keywordParam) Invariant() bool { return p.kw.IsEvaluable() }

func (p *keywordParam) Symbols() []Variable { return nil }

func (p *keywordParam) IsLiteral() bool { return false }

func (p *keywordParam) IsValued() bool { return p.kw.IsEvaluable() }

func (p *keywordParam) BaseType() (leaf.Kind, bool) {
	switch p.kw {
	case KeywordTrue, KeywordFalse:
		return leaf.KindBool, true
	case KeywordNil:
		return leaf.KindVoid, true
	default:
		return leaf.KindVoid, false
	}
}

func (p *keywordParam) IsCollection() Tri {
	switch p.kw {
	case KeywordTrue, KeywordFalse, KeywordNil:
		return False
	default:
		return Unknown
	}
}

func (p *keywordParam) UnderestimatedSize() int {
	switch p.kw {
	case KeywordTrue:
		return len("true")
	case KeywordFalse:
		return len("false")
	default:
		return 0
	}
}

// Resolve returns p unchanged: keyword decay happens at Evaluate time,
// not at Resolve time.
func (p *keywordParam) Resolve(Stack) Parameter { return p }

// decay implements the keyword factory's eager decay: evaluable boolean
// keywords become value literals, self becomes the self variable, and
// nil becomes the void-nil literal.
func (p *keywordParam) decay() Parameter {
	switch p.kw {
	case KeywordTrue:
		return NewValueParam(leaf.Bool(true))
	case KeywordFalse:
		return NewValueParam(leaf.Bool(false))
	case KeywordNil:
		return NewValueParam(leaf.TrueNil())
	case KeywordSelf:
		return NewVariableParam(Self())
	default:
		return nil
	}
}

// Evaluate decays an evaluable keyword and evaluates the result. A
// non-evaluable keyword reaching Evaluate is a defect: it must have been
// filtered out upstream (by the parser or by a host tag library), not by
// this core.
func (p *keywordParam) Evaluate(stack Stack) leaf.Data {
	decayed := p.decay()
	if decayed == nil {
		return leaf.Erred(leaf.NewError(leaf.ErrInternalInvariant, "non-evaluable keyword reached evaluation"))
	}
	return decayed.Evaluate(stack)
}

func (p *keywordParam) String() string {
	if p.kw == KeywordOther {
		return p.name
	}
	return p.kw.String()
}
