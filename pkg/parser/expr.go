package parser

import "github.com/yaklabco/exprcst/pkg/syntax"

// Binding strength of operators. Prefix minus binds tighter than every
// infix operator.
const (
	precAdditive       = 1
	precMultiplicative = 2
	precPrefix         = 3
)

var (
	// atomStart lists what may begin an operand.
	atomStart = []syntax.Kind{syntax.Number, syntax.Ident, syntax.Minus, syntax.LParen}

	// infixOperators lists the binary operators, for diagnostics about
	// leftover input.
	infixOperators = []syntax.Kind{syntax.Plus, syntax.Minus, syntax.Star, syntax.Slash}

	// syncTokens end error recovery inside an expression.
	syncTokens = []syntax.Kind{syntax.RParen, syntax.RBrace}

	closeParen = []syntax.Kind{syntax.RParen}
)

// infixPrecedence returns the precedence of a binary operator.
func infixPrecedence(kind syntax.Kind) (int, bool) {
	switch kind {
	case syntax.Plus, syntax.Minus:
		return precAdditive, true
	case syntax.Star, syntax.Slash:
		return precMultiplicative, true
	}
	return 0, false
}

// root parses a whole input: at most one expression, followed by an Error
// node for anything left over. Input without significant tokens yields an
// empty Root and no diagnostics.
func (p *parser) root() {
	p.startNode(syntax.Root)

	if !p.atEnd() {
		p.expr()
	}

	if !p.atEnd() {
		p.report(infixOperators)
		p.startNode(syntax.Error)
		for !p.atEnd() {
			p.bump()
		}
		p.finishNode()
	}

	p.finishNode()
}

func (p *parser) expr() {
	p.exprMinPrec(precAdditive)
}

// exprMinPrec parses operands joined by operators of at least minPrec.
//
// The checkpoint is taken before the first operand. Every operator that
// continues the loop wraps everything recorded since then, including the
// BinaryExpr from the previous iteration, which makes the operators left
// associative.
func (p *parser) exprMinPrec(minPrec int) {
	cp := p.checkpoint()
	p.unary()

	for {
		lx, ok := p.peek()
		if !ok {
			return
		}
		prec, isInfix := infixPrecedence(lx.Kind)
		if !isInfix || prec < minPrec {
			return
		}

		p.bump()
		p.startNodeAt(syntax.BinaryExpr, cp)
		p.exprMinPrec(prec + 1)
		p.finishNode()
	}
}

// unary parses an optional chain of prefix minus signs and one atom.
func (p *parser) unary() {
	if p.at(syntax.Minus) {
		p.startNode(syntax.PrefixExpr)
		p.bump()
		p.exprMinPrec(precPrefix)
		p.finishNode()
		return
	}
	p.atom()
}

func (p *parser) atom() {
	lx, ok := p.peek()
	if !ok {
		p.recoverWith(atomStart, syncTokens)
		return
	}

	switch lx.Kind {
	case syntax.Number, syntax.Ident:
		p.bump()
	case syntax.LParen:
		p.paren()
	default:
		p.recoverWith(atomStart, syncTokens)
	}
}

// paren parses a parenthesized expression. A missing closing parenthesis
// is reported, and a closing parenthesis found after recovery is still
// consumed by the group.
func (p *parser) paren() {
	p.startNode(syntax.ParenExpr)
	p.bump()
	p.expr()

	if !p.at(syntax.RParen) {
		p.recoverWith(closeParen, syncTokens)
	}
	if p.at(syntax.RParen) {
		p.bump()
	}

	p.finishNode()
}
