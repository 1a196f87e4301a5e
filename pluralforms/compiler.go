package pluralforms

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	eofTok tokenKind = iota
	numTok
	varTok
	opTok
)

type token struct {
	kind tokenKind
	num  int
	op   string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case eofTok:
		return "end of expression"
	case numTok:
		return strconv.Itoa(t.num)
	case varTok:
		return "n"
	}
	return fmt.Sprintf("%q", t.op)
}

type lexer struct {
	data string
	pos  int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.data) && (l.data[l.pos] == ' ' || l.data[l.pos] == '\t') {
		l.pos += 1
	}
	if l.pos >= len(l.data) {
		return token{kind: eofTok, pos: l.pos}, nil
	}

	pos := l.pos
	c := l.data[pos]
	l.pos += 1
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
			l.pos += 1
		}
		num, err := strconv.ParseInt(l.data[pos:l.pos], 10, 32)
		if err != nil {
			return token{}, fmt.Errorf("invalid number %q at offset %d", l.data[pos:l.pos], pos)
		}
		return token{kind: numTok, num: int(num), pos: pos}, nil
	case 'n':
		return token{kind: varTok, pos: pos}, nil
	case '=':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return token{kind: opTok, op: "==", pos: pos}, nil
		}
	case '!', '<', '>':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return token{kind: opTok, op: string(c) + "=", pos: pos}, nil
		}
		return token{kind: opTok, op: string(c), pos: pos}, nil
	case '&', '|':
		if l.pos < len(l.data) && l.data[l.pos] == c {
			l.pos += 1
			return token{kind: opTok, op: string(c) + string(c), pos: pos}, nil
		}
	case '?', ':', '(', ')', '*', '/', '%', '+', '-':
		return token{kind: opTok, op: string(c), pos: pos}, nil
	case ';', '\n':
		// Plural-Forms headers terminate the expression with a semicolon.
		l.pos = len(l.data)
		return token{kind: eofTok, pos: pos}, nil
	}
	return token{}, fmt.Errorf("unexpected character %q at offset %d", c, pos)
}

var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

func makeBinary(op string, left, right Expression) Expression {
	switch op {
	case "||":
		return orExpr{left, right}
	case "&&":
		return andExpr{left, right}
	case "==":
		return eqExpr{left, right}
	case "!=":
		return neExpr{left, right}
	case "<":
		return ltExpr{left, right}
	case "<=":
		return lteExpr{left, right}
	case ">":
		return gtExpr{left, right}
	case ">=":
		return gteExpr{left, right}
	case "+":
		return addExpr{left, right}
	case "-":
		return subExpr{left, right}
	case "*":
		return mulExpr{left, right}
	case "/":
		return divExpr{left, right}
	case "%":
		return modExpr{left, right}
	}
	panic("internal error: unknown binary operator " + op)
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) isOp(op string) bool {
	return p.tok.kind == opTok && p.tok.op == op
}

func (p *parser) expect(op string) error {
	if !p.isOp(op) {
		return fmt.Errorf("expected %q, found %s at offset %d", op, p.tok, p.tok.pos)
	}
	return p.advance()
}

// ternary := binary [ "?" ternary ":" ternary ]
func (p *parser) parseTernary() (Expression, error) {
	test, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.isOp("?") {
		return test, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	ifTrue, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	ifFalse, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{test: test, ifTrue: ifTrue, ifFalse: ifFalse}, nil
}

func (p *parser) parseBinary(minPrec int) (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == opTok {
		op := p.tok.op
		prec, ok := binaryPrecedence[op]
		if !ok || prec < minPrec {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = makeBinary(op, left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (Expression, error) {
	if p.isOp("!") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{sub}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expression, error) {
	switch {
	case p.tok.kind == numTok:
		e := numberExpr{p.tok.num}
		return e, p.advance()
	case p.tok.kind == varTok:
		return varExpr{}, p.advance()
	case p.isOp("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unexpected %s at offset %d", p.tok, p.tok.pos)
}

// Compile a string containing a plural form expression to a Expression object.
func Compile(expr string) (Expression, error) {
	p := parser{lex: lexer{data: expr}}
	if err := p.advance(); err != nil {
		return nil, fmt.Errorf("cannot parse expression: %v", err)
	}
	e, err := p.parseTernary()
	if err != nil {
		return nil, fmt.Errorf("cannot parse expression: %v", err)
	}
	if p.tok.kind != eofTok {
		return nil, fmt.Errorf("cannot parse expression: unexpected %s at offset %d", p.tok, p.tok.pos)
	}
	return e, nil
}

// MustCompile is like Compile but panics if the expression cannot be
// parsed. It simplifies initialization of built-in rule tables.
func MustCompile(expr string) Expression {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}
