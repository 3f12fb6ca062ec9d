package parser

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/token"
)

// parseFunctionDecl implements
// `function_decl := type ID '(' param_list? ')' block`.
func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, *diag.Diagnostic) {
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Param
	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind != token.RPAREN {
		for {
			param, perr := p.parseParam()
			if perr != nil {
				return nil, perr
			}
			params = append(params, param)

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

	node := &ast.FunctionDecl{RetType: typeTagOf(typeTok.Kind), Name: nameTok.Lexeme, Params: params, Body: body}
	node.P = posOf(typeTok)
	return node, nil
}

// parseParam implements `param := type ID ('[' ']')?`.
func (p *Parser) parseParam() (*ast.Param, *diag.Diagnostic) {
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !isTypeKeyword(typeTok.Kind) {
		return nil, diag.Errorf(diag.ParseExpected, posOf(typeTok), "expected a parameter type, got %s", typeTok.Kind)
	}
	nameTok, err := p.eat(token.ID)
	if err != nil {
		return nil, err
	}

	isArray := false
	tok, perr := p.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind == token.LBRACK {
		p.next()
		if _, err := p.eat(token.RBRACK); err != nil {
			return nil, err
		}
		isArray = true
	}

	param := &ast.Param{Type: typeTagOf(typeTok.Kind), Name: nameTok.Lexeme, IsArray: isArray}
	param.P = posOf(typeTok)
	return param, nil
}

// parseBlock implements `block := '{' statement* '}'`.
func (p *Parser) parseBlock() (*ast.Block, *diag.Diagnostic) {
	open, err := p.eat(token.LBRACE)
	if err != nil {
		return nil, err
	}

	block := &ast.Block{}
	block.P = posOf(open)

	for {
		tok, perr := p.peek()
		if perr != nil {
			return nil, perr
		}
		if tok.Kind == token.RBRACE {
			break
		}
		stmts, serr := p.parseStatement()
		if serr != nil {
			return nil, serr
		}
		block.Statements = append(block.Statements, stmts...)
	}
	if _, err := p.eat(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}
