package template

import (
	"fmt"
	"strings"
)

// parse compiles template source into its top-level node list.
// Blocks are parsed recursively; the stack of open blocks is kept so that
// a missing or extra end tag can be reported against the right opener.
func parse(src string) ([]Node, error) {
	p := &parser{l: newLexer(src)}
	return p.parseBlock()
}

type openBlock struct {
	kw  Keyword
	pos Pos
}

type parser struct {
	l     *lexer
	stack []openBlock
}

// parseBlock parses nodes until end of input (top level) or until the end
// tag that closes the innermost open block.
func (p *parser) parseBlock() ([]Node, error) {
	var nodes []Node
	for {
		tok, err := p.l.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenEOF:
			if n := len(p.stack); n > 0 {
				top := p.stack[n-1]
				return nil, &Error{
					Kind:     KindUnbalancedBlock,
					Pos:      top.pos,
					Expected: "end for " + top.kw.String(),
					Found:    "end of input",
					Err: &Error{
						Kind:   KindUnexpectedEndOfInput,
						Pos:    tok.Pos,
						Detail: fmt.Sprintf("%d block(s) still open", n),
					},
				}
			}
			return nodes, nil
		case TokenText:
			nodes = append(nodes, &Text{Text: tok.Val})
		case TokenVarOpen:
			n, err := p.parseVariable()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case TokenControlOpen:
			n, closed, err := p.parseControl(tok)
			if err != nil {
				return nil, err
			}
			if closed {
				return nodes, nil
			}
			nodes = append(nodes, n)
		default:
			return nil, &Error{Kind: KindInvalidExpression, Pos: tok.Pos, Detail: "unexpected " + tok.Kind.String()}
		}
	}
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.l.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		if tok.Kind == TokenEOF {
			return Token{}, &Error{Kind: KindUnexpectedEndOfInput, Pos: tok.Pos}
		}
		return Token{}, &Error{
			Kind:   KindInvalidExpression,
			Pos:    tok.Pos,
			Detail: fmt.Sprintf("expected %s, found %s", kind, tok.Kind),
		}
	}
	return tok, nil
}

func (p *parser) parseVariable() (Node, error) {
	id, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenVarClose); err != nil {
		return nil, err
	}
	return &Variable{Path: parsePath(id.Val), Pos: id.Pos}, nil
}

// parseControl handles one {% ... %} tag. closed is true when the tag was
// an end that closes the block currently being parsed.
func (p *parser) parseControl(open Token) (n Node, closed bool, err error) {
	kw, err := p.expect(TokenKeyword)
	if err != nil {
		return nil, false, err
	}
	tok, err := p.l.next()
	if err != nil {
		return nil, false, err
	}
	var expr Token
	if tok.Kind == TokenExpression {
		expr = tok
		if tok, err = p.l.next(); err != nil {
			return nil, false, err
		}
	}
	if tok.Kind != TokenControlClose {
		return nil, false, &Error{Kind: KindInvalidExpression, Pos: tok.Pos, Detail: "expected " + TokenControlClose.String()}
	}

	switch kw.Keyword {
	case KeywordEnd:
		if expr.Val != "" {
			return nil, false, &Error{Kind: KindInvalidExpression, Pos: expr.Pos, Detail: "end takes no arguments"}
		}
		if len(p.stack) == 0 {
			return nil, false, &Error{Kind: KindUnbalancedBlock, Pos: open.Pos, Found: "end"}
		}
		p.stack = p.stack[:len(p.stack)-1]
		return nil, true, nil
	case KeywordIf:
		n, err := p.parseIf(open, expr)
		return n, false, err
	case KeywordFor:
		n, err := p.parseFor(open, expr)
		return n, false, err
	default:
		return nil, false, &Error{Kind: KindUnknownKeyword, Pos: kw.Pos, Found: kw.Val}
	}
}

func (p *parser) body(kw Keyword, pos Pos) ([]Node, error) {
	p.stack = append(p.stack, openBlock{kw: kw, pos: pos})
	return p.parseBlock()
}

func (p *parser) parseIf(open, expr Token) (*If, error) {
	if !isPath(expr.Val) {
		pos := expr.Pos
		if expr.Val == "" {
			pos = open.Pos
		}
		return nil, &Error{Kind: KindInvalidIdentifier, Pos: pos, Detail: fmt.Sprintf("if expects a single variable path, got %q", expr.Val)}
	}
	body, err := p.body(KeywordIf, open.Pos)
	if err != nil {
		return nil, err
	}
	return &If{Cond: parsePath(expr.Val), Body: body, Pos: open.Pos}, nil
}

func (p *parser) parseFor(open, expr Token) (*For, error) {
	fields := strings.Fields(expr.Val)
	if len(fields) != 3 || fields[1] != "in" {
		pos := expr.Pos
		if expr.Val == "" {
			pos = open.Pos
		}
		return nil, &Error{Kind: KindInvalidExpression, Pos: pos, Detail: fmt.Sprintf("expected 'for <name> in <path>', got %q", expr.Val)}
	}
	if !isIdent(fields[0]) {
		return nil, &Error{Kind: KindInvalidIdentifier, Pos: expr.Pos, Detail: fmt.Sprintf("loop variable %q", fields[0])}
	}
	if !isPath(fields[2]) {
		return nil, &Error{Kind: KindInvalidIdentifier, Pos: expr.Pos, Detail: fmt.Sprintf("iterable %q", fields[2])}
	}
	body, err := p.body(KeywordFor, open.Pos)
	if err != nil {
		return nil, err
	}
	return &For{Var: fields[0], Iterable: parsePath(fields[2]), Body: body, Pos: open.Pos}, nil
}
