package parser

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/token"
)

// parseStatement implements the `statement` nonterminal, dispatching on
// the lookahead token. Most statement forms produce exactly one node;
// parseDeclStatement can produce several (one per comma-separated
// declarator), so every form returns a slice and callers splice it in.
func (p *Parser) parseStatement() ([]ast.Node, *diag.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case isTypeKeyword(tok.Kind):
		return p.parseDeclStatement()
	case tok.Kind == token.IF:
		node, err := p.parseIf()
		return one(node, err)
	case tok.Kind == token.WHILE:
		node, err := p.parseWhile()
		return one(node, err)
	case tok.Kind == token.FOR:
		node, err := p.parseFor()
		return one(node, err)
	case tok.Kind == token.RETURN:
		node, err := p.parseReturn()
		return one(node, err)
	case tok.Kind == token.ID:
		node, err := p.parseIDStatement()
		return one(node, err)
	}

	return nil, diag.Errorf(diag.ParseExpected, posOf(tok), "expected a statement, got %s", tok.Kind)
}

// one wraps a single-node statement result into the []ast.Node shape
// parseStatement returns, propagating a nil node on error untouched.
func one(node ast.Node, err *diag.Diagnostic) ([]ast.Node, *diag.Diagnostic) {
	if err != nil {
		return nil, err
	}
	return []ast.Node{node}, nil
}

// parseDeclStatement implements `var_decl` and `array_decl`, which share
// the `type ID` prefix. A comma-separated var_decl is flattened into one
// *ast.VarDecl per declarator, returned as sibling statements.
func (p *Parser) parseDeclStatement() ([]ast.Node, *diag.Diagnostic) {
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}
	ty := typeTagOf(typeTok.Kind)

	nameTok, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}

	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind == token.LBRACK {
		p.next()
		sizeTok, serr := p.eat(token.INTEGER_CONST)
		if serr != nil {
			return nil, serr
		}
		if _, err := p.eat(token.RBRACK); err != nil {
			return nil, err
		}
		if _, err := p.eat(token.SEMI); err != nil {
			return nil, err
		}
		decl := &ast.ArrayDecl{Type: ty, Name: nameTok.Lexeme, Size: sizeTok.Value.Int}
		decl.P = posOf(typeTok)
		return []ast.Node{decl}, nil
	}

	first, ferr := p.parseDeclarator(typeTok, ty, nameTok)
	if ferr != nil {
		return nil, ferr
	}
	decls := []ast.Node{first}

	for {
		tok, perr := p.peek()
		if perr != nil {
			return nil, perr
		}
		if tok.Kind != token.COMMA {
			break
		}
		p.next()
		nameTok, err := p.eat(token.ID)
		if err != nil {
			return nil, err
		}
		decl, derr := p.parseDeclarator(typeTok, ty, nameTok)
		if derr != nil {
			return nil, derr
		}
		decls = append(decls, decl)
	}
	if _, err := p.eat(token.SEMI); err != nil {
		return nil, err
	}

	return decls, nil
}

// parseDeclarator implements `declarator := ID ('=' expr)?`, given that
// the type and the ID have already been consumed.
func (p *Parser) parseDeclarator(typeTok token.Token, ty ast.TypeTag, nameTok token.Token) (*ast.VarDecl, *diag.Diagnostic) {
	decl := &ast.VarDecl{Type: ty, Name: nameTok.Lexeme}
	decl.P = posOf(typeTok)

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.ASSIGN {
		p.next()
		init, ierr := p.parseExpr()
		if ierr != nil {
			return nil, ierr
		}
		decl.Init = init
	}
	return decl, nil
}

// parseIDStatement disambiguates `call_stmt` from `assign_stmt`, both of
// which begin with an identifier.
func (p *Parser) parseIDStatement() (ast.Node, *diag.Diagnostic) {
	nameTok, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}

	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}

	if tok.Kind == token.LPAREN {
		call, cerr := p.parseCallArgs(nameTok)
		if cerr != nil {
			return nil, cerr
		}
		if _, err := p.eat(token.SEMI); err != nil {
			return nil, err
		}
		return call, nil
	}

	lvalue, lerr := p.parseLValueTail(nameTok)
	if lerr != nil {
		return nil, lerr
	}
	assign, aerr := p.parseAssignCore(lvalue)
	if aerr != nil {
		return nil, aerr
	}
	if _, err := p.eat(token.SEMI); err != nil {
		return nil, err
	}
	return assign, nil
}

// parseLValueTail implements the lvalue forms: a bare VarRef, or an
// Index when followed by `[`.
func (p *Parser) parseLValueTail(nameTok token.Token) (ast.LValue, *diag.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.LBRACK {
		ref := &ast.VarRef{Name: nameTok.Lexeme}
		ref.P = posOf(nameTok)
		return ref, nil
	}

	p.next()
	idx, ierr := p.parseExpr()
	if ierr != nil {
		return nil, ierr
	}
	if _, err := p.eat(token.RBRACK); err != nil {
		return nil, err
	}
	index := &ast.Index{Name: nameTok.Lexeme, Idx: idx}
	index.P = posOf(nameTok)
	return index, nil
}

// parseAssignCore implements `assign_core := lvalue '=' expr`, the shared
// tail used by assign_stmt, for_init, and for_post.
func (p *Parser) parseAssignCore(target ast.LValue) (*ast.Assign, *diag.Diagnostic) {
	if _, err := p.eat(token.ASSIGN); err != nil {
		return nil, err
	}
	value, verr := p.parseExpr()
	if verr != nil {
		return nil, verr
	}
	assign := &ast.Assign{Target: target, Value: value}
	assign.P = target.Pos()
	return assign, nil
}

// parseCallArgs implements the call tail `'(' arg_list? ')'`, given that
// the callee name has already been consumed.
func (p *Parser) parseCallArgs(nameTok token.Token) (*ast.Call, *diag.Diagnostic) {
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}

	call := &ast.Call{Name: nameTok.Lexeme}
	call.P = posOf(nameTok)

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.RPAREN {
		for {
			arg, aerr := p.parseExpr()
			if aerr != nil {
				return nil, aerr
			}
			call.Args = append(call.Args, arg)

			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.eat(token.RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parseIf() (ast.Node, *diag.Diagnostic) {
	ifTok, err := p.eat(token.IF)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}
	cond, cerr := p.parseExpr()
	if cerr != nil {
		return nil, cerr
	}
	if _, err := p.eat(token.RPAREN); err != nil {
		return nil, err
	}
	then, terr := p.parseBlock()
	if terr != nil {
		return nil, terr
	}

	node := &ast.If{Cond: cond, Then: then}
	node.P = posOf(ifTok)

	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind == token.ELSE {
		p.next()
		els, eerr := p.parseBlock()
		if eerr != nil {
			return nil, eerr
		}
		node.Else = els
	}
	return node, nil
}

func (p *Parser) parseWhile() (ast.Node, *diag.Diagnostic) {
	whileTok, err := p.eat(token.WHILE)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}
	cond, cerr := p.parseExpr()
	if cerr != nil {
		return nil, cerr
	}
	if _, err := p.eat(token.RPAREN); err != nil {
		return nil, err
	}
	body, berr := p.parseBlock()
	if berr != nil {
		return nil, berr
	}

	node := &ast.While{Cond: cond, Body: body}
	node.P = posOf(whileTok)
	return node, nil
}

// parseFor implements
// `for_stmt := 'for' '(' for_init? ';' expr? ';' for_post? ')' block`.
func (p *Parser) parseFor() (ast.Node, *diag.Diagnostic) {
	forTok, err := p.eat(token.FOR)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}

	node := &ast.For{}
	node.P = posOf(forTok)

	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind != token.SEMI {
		init, ierr := p.parseForInit()
		if ierr != nil {
			return nil, ierr
		}
		node.Init = init
	}
	if _, err := p.eat(token.SEMI); err != nil {
		return nil, err
	}

	tok, perr = p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind != token.SEMI {
		cond, cerr := p.parseExpr()
		if cerr != nil {
			return nil, cerr
		}
		node.Cond = cond
	}
	if _, err := p.eat(token.SEMI); err != nil {
		return nil, err
	}

	tok, perr = p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind != token.RPAREN {
		for {
			nameTok, nerr := p.eat(token.ID)
			if nerr != nil {
				return nil, nerr
			}
			lvalue, lerr := p.parseLValueTail(nameTok)
			if lerr != nil {
				return nil, lerr
			}
			assign, aerr := p.parseAssignCore(lvalue)
			if aerr != nil {
				return nil, aerr
			}
			node.Post = append(node.Post, assign)

			tok, perr = p.peek()
			if perr != nil {
				return nil, perr
			}
			if tok.Kind != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.eat(token.RPAREN); err != nil {
		return nil, err
	}

	body, berr := p.parseBlock()
	if berr != nil {
		return nil, berr
	}
	node.Body = body
	return node, nil
}

// parseForInit implements `for_init := var_decl_head | assign_core`: a
// single declarator with no trailing semicolon, or a bare assignment.
func (p *Parser) parseForInit() (ast.Node, *diag.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if isTypeKeyword(tok.Kind) {
		typeTok, terr := p.next()
		if terr != nil {
			return nil, terr
		}
		nameTok, nerr := p.eat(token.ID)
		if nerr != nil {
			return nil, nerr
		}
		return p.parseDeclarator(typeTok, typeTagOf(typeTok.Kind), nameTok)
	}

	nameTok, nerr := p.eat(token.ID)
	if nerr != nil {
		return nil, nerr
	}
	lvalue, lerr := p.parseLValueTail(nameTok)
	if lerr != nil {
		return nil, lerr
	}
	return p.parseAssignCore(lvalue)
}

func (p *Parser) parseReturn() (ast.Node, *diag.Diagnostic) {
	retTok, err := p.eat(token.RETURN)
	if err != nil {
		return nil, err
	}

	node := &ast.Return{}
	node.P = posOf(retTok)

	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind != token.SEMI {
		value, verr := p.parseExpr()
		if verr != nil {
			return nil, verr
		}
		node.Value = value
	}
	if _, err := p.eat(token.SEMI); err != nil {
		return nil, err
	}
	return node, nil
}
