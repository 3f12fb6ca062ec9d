// Package parser implements CLIKE's hand-written recursive-descent parser:
// one function per grammar nonterminal, plus #include resolution against a
// source.Loader.
package parser

import (
	"path/filepath"

	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/lexer"
	"clike/internal/source"
	"clike/internal/token"
)

// DefaultMaxIncludeDepth is the default include-nesting cap, used unless
// a config overrides it (internal/config's include.max-depth).
const DefaultMaxIncludeDepth = 64

// includeState is shared by every Parser spawned while resolving a tree of
// #include directives: the set of already-included canonical paths (for
// dedup) and the current nesting depth (for the depth cap).
type includeState struct {
	visited  map[string]bool
	depth    int
	loader   source.Loader
	maxDepth int
}

// Parser consumes tokens from a single file and produces AST nodes.
type Parser struct {
	lex     *lexer.Lexer
	baseDir string
	inc     *includeState

	// pendingIncludes buffers function declarations pulled in via
	// #include, in encounter order, until parseProgram appends them to
	// the program's function list ahead of this file's own declarations.
	pendingIncludes []*ast.FunctionDecl
}

// Parse parses the file at canonicalPath (whose text is src) and every
// file it transitively includes, using the default include-depth cap.
func Parse(canonicalPath string, src []byte, loader source.Loader) (*ast.Program, *diag.Diagnostic) {
	return ParseWithDepth(canonicalPath, src, loader, DefaultMaxIncludeDepth)
}

// ParseWithDepth is Parse with an overridable include-depth cap, wired to
// internal/config's include.max-depth.
func ParseWithDepth(canonicalPath string, src []byte, loader source.Loader, maxDepth int) (*ast.Program, *diag.Diagnostic) {
	inc := &includeState{visited: map[string]bool{canonicalPath: true}, loader: loader, maxDepth: maxDepth}
	p := &Parser{lex: lexer.New(src), baseDir: filepath.Dir(canonicalPath), inc: inc}
	return p.parseProgram()
}

func (p *Parser) next() (token.Token, *diag.Diagnostic) { return p.lex.Next() }
func (p *Parser) peek() (token.Token, *diag.Diagnostic) { return p.lex.Peek() }

func posOf(t token.Token) *diag.Position {
	return &diag.Position{StartLn: t.Line, StartCol: t.Col, EndLn: t.Line, EndCol: t.Col + len(t.Lexeme)}
}

// eat consumes a token of the given kind or fails with PARSE_EXPECTED.
func (p *Parser) eat(kind token.Kind) (token.Token, *diag.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, diag.Errorf(diag.ParseExpected, posOf(tok), "expected %s, got %s", kind, tok.Kind)
	}
	return tok, nil
}

func isTypeKeyword(k token.Kind) bool {
	switch k {
	case token.INT_KW, token.FLOAT_KW, token.CHAR_KW, token.STRING_KW, token.VOID_KW:
		return true
	}
	return false
}

func typeTagOf(k token.Kind) ast.TypeTag {
	switch k {
	case token.INT_KW:
		return ast.INT
	case token.FLOAT_KW:
		return ast.FLOAT
	case token.CHAR_KW:
		return ast.CHAR
	case token.STRING_KW:
		return ast.STRING
	default:
		return ast.VOID
	}
}

// parseProgram implements `program := include* top_decl* EOF`, followed by
// main extraction.
func (p *Parser) parseProgram() (*ast.Program, *diag.Diagnostic) {
	prog := &ast.Program{}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.INCLUDE {
			break
		}
		p.next()
		if err := p.resolveInclude(tok); err != nil {
			return nil, err
		}
	}
	prog.Funcs = append(prog.Funcs, p.pendingIncludes...)

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.INCLUDE {
			return nil, diag.Errorf(diag.ParseBadIncludePosition, posOf(tok), "#include must appear before any function declaration")
		}
		if !isTypeKeyword(tok.Kind) {
			return nil, diag.Errorf(diag.ParseExpected, posOf(tok), "expected a function declaration, got %s", tok.Kind)
		}
		fn, ferr := p.parseFunctionDecl()
		if ferr != nil {
			return nil, ferr
		}
		prog.Funcs = append(prog.Funcs, fn)
	}
	p.eat(token.EOF)

	for i, fn := range prog.Funcs {
		if fn.Name == "main" && fn.RetType == ast.INT && len(fn.Params) == 0 {
			prog.Main = fn
			prog.Funcs = append(prog.Funcs[:i], prog.Funcs[i+1:]...)
			break
		}
	}

	return prog, nil
}

// resolveInclude implements the include-resolution algorithm: resolve the
// path, dedup by canonical path, cap nesting depth, parse the included
// file fully, and fold its function declarations (only) into the current
// file's function list.
func (p *Parser) resolveInclude(tok token.Token) *diag.Diagnostic {
	relPath := tok.Lexeme

	canonical, text, err := p.inc.loader.Read(relPath, p.baseDir)
	if err != nil {
		return diag.Errorf(diag.ParseIncludeIO, posOf(tok), "%v", err)
	}
	if p.inc.visited[canonical] {
		return nil
	}

	p.inc.depth++
	if p.inc.depth > p.inc.maxDepth {
		return diag.Errorf(diag.ParseIncludeDepth, posOf(tok), "#include nesting exceeds %d levels", p.inc.maxDepth)
	}
	defer func() { p.inc.depth-- }()

	p.inc.visited[canonical] = true

	sub := &Parser{lex: lexer.New(text), baseDir: filepath.Dir(canonical), inc: p.inc}
	subProg, serr := sub.parseProgram()
	if serr != nil {
		return serr
	}

	p.pendingIncludes = append(p.pendingIncludes, subProg.Funcs...)
	return nil
}
