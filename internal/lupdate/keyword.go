package lupdate

import (
	"errors"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

var (
	ErrNotString  = errors.New("not a string constant")
	ErrBadKeyword = errors.New("bad keyword")
	ErrOutOfRange = errors.New("argument index out of range")
)

// stringConstant evaluates an ast.Expr representing a string constant
//
// In addition to literals, concatenations and parenthesised
// expressions of string constants are accepted.
func stringConstant(expr ast.Expr) (string, error) {
	switch val := expr.(type) {
	case *ast.BasicLit:
		if val.Kind != token.STRING {
			return "", ErrNotString
		}
		s, err := strconv.Unquote(val.Value)
		if err != nil {
			return "", err
		}
		return s, nil
	// Support simple string concatenation
	case *ast.BinaryExpr:
		// we only support string concat
		if val.Op != token.ADD {
			return "", ErrNotString
		}
		left, err := stringConstant(val.X)
		if err != nil {
			return "", err
		}
		right, err := stringConstant(val.Y)
		if err != nil {
			return "", err
		}
		return left + right, nil
	// Support parenthesised expressions
	case *ast.ParenExpr:
		return stringConstant(val.X)
	}
	return "", ErrNotString
}

// Keyword describes a translation function: which call arguments hold
// the context, the source text, the disambiguation comment and the
// count of a numerus message.
type Keyword struct {
	name, pkg                string
	source, context, comment int
	count                    int
}

// ParseKeyword parses a keyword spec of the form [PKG.]FUNC[:ARG,...].
// Arguments are 1-based indexes; a plain index marks the source text
// and the suffixes c, d and n mark the context, the disambiguation
// comment and the count.
func ParseKeyword(spec string) (*Keyword, error) {
	idx := strings.IndexByte(spec, ':')
	var function, pkg string
	var args []string
	if idx >= 0 {
		function = spec[:idx]
		args = strings.Split(spec[idx+1:], ",")
	} else {
		function = spec
	}

	idx = strings.IndexByte(function, '.')
	if idx >= 0 {
		pkg = function[:idx]
		function = function[idx+1:]
		if strings.IndexByte(function, '.') >= 0 {
			return nil, ErrBadKeyword
		}
	}
	if function == "" {
		return nil, ErrBadKeyword
	}

	k := &Keyword{
		name:    function,
		pkg:     pkg,
		source:  0,
		context: -1,
		comment: -1,
		count:   -1,
	}

	sourceSeen := false
	for _, arg := range args {
		if arg == "" {
			return nil, ErrBadKeyword
		}
		var target *int
		switch arg[len(arg)-1] {
		case 'c':
			target = &k.context
		case 'd':
			target = &k.comment
		case 'n':
			target = &k.count
		default:
			if sourceSeen {
				return nil, ErrBadKeyword
			}
			sourceSeen = true
			target = &k.source
		}
		if target != &k.source {
			arg = arg[:len(arg)-1]
		}
		val, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		if val < 1 {
			return nil, ErrBadKeyword
		}
		*target = val - 1
	}

	return k, nil
}

// Numerus reports whether calls of the keyword pass a count.
func (k *Keyword) Numerus() bool {
	return k.count >= 0
}

func (k *Keyword) Match(call *ast.CallExpr) bool {
	var pkg, name string

	switch e := call.Fun.(type) {
	case *ast.Ident:
		name = e.Name
	case *ast.SelectorExpr:
		name = e.Sel.Name
		if ident, ok := e.X.(*ast.Ident); ok {
			pkg = ident.Name
		}
	default:
		return false
	}

	if name != k.name {
		return false
	}
	// If the keyword includes a package qualifier, make sure it matches
	return k.pkg == "" || k.pkg == pkg
}

func argument(call *ast.CallExpr, idx int) (string, error) {
	if idx >= len(call.Args) {
		return "", ErrOutOfRange
	}
	return stringConstant(call.Args[idx])
}

// Extract returns the message a matching call refers to. A keyword
// without a context argument leaves the context empty.
func (k *Keyword) Extract(call *ast.CallExpr) (msg Message, err error) {
	msg.source, err = argument(call, k.source)
	if err != nil {
		return Message{}, err
	}
	if k.context >= 0 {
		msg.context, err = argument(call, k.context)
		if err != nil {
			return Message{}, err
		}
	}
	if k.comment >= 0 {
		msg.comment, err = argument(call, k.comment)
		if err != nil {
			return Message{}, err
		}
	}
	if k.count >= 0 {
		// the count is evaluated at run time; it only has to be there
		if k.count >= len(call.Args) {
			return Message{}, ErrOutOfRange
		}
	}
	return msg, nil
}
