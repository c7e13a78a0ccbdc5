package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"
)

// load compiles src after routing the operations that must see through
// boxed numbers to the helpers installed by openNumbers: number literals
// that a plain number cannot hold, comparisons, table keys and numeric for
// bounds.
func (e *Env) load(src, name string) (*lua.LFunction, error) {
	chunk, err := parse.Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	rewriteStmts(chunk)
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	return e.L.NewFunctionFromProto(proto), nil
}

func helperCall(name string, at ast.Expr, args ...ast.Expr) ast.Expr {
	fn := &ast.IdentExpr{Value: name}
	fn.SetLine(at.Line())
	fn.SetLastLine(at.LastLine())
	call := &ast.FuncCallExpr{Func: fn, Args: args, AdjustRet: true}
	call.SetLine(at.Line())
	call.SetLastLine(at.LastLine())
	return call
}

func isConst(ex ast.Expr) bool {
	switch x := ex.(type) {
	case *ast.NumberExpr, *ast.StringExpr, *ast.TrueExpr, *ast.FalseExpr, *ast.NilExpr:
		return true
	case *ast.UnaryMinusOpExpr:
		_, ok := x.Expr.(*ast.NumberExpr)
		return ok
	}
	return false
}

// plainExpr unboxes ex where only a plain number will do.
func plainExpr(ex ast.Expr) ast.Expr {
	ex = rewriteExpr(ex)
	if ex == nil || isConst(ex) {
		return ex
	}
	return helperCall("_num_plain", ex, ex)
}

func rewriteStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		rewriteStmt(stmt)
	}
}

func rewriteExprs(exprs []ast.Expr) {
	for i, ex := range exprs {
		exprs[i] = rewriteExpr(ex)
	}
}

func rewriteStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		rewriteExprs(s.Lhs)
		rewriteExprs(s.Rhs)
	case *ast.LocalAssignStmt:
		rewriteExprs(s.Exprs)
	case *ast.FuncCallStmt:
		s.Expr = rewriteExpr(s.Expr)
	case *ast.DoBlockStmt:
		rewriteStmts(s.Stmts)
	case *ast.WhileStmt:
		s.Condition = rewriteExpr(s.Condition)
		rewriteStmts(s.Stmts)
	case *ast.RepeatStmt:
		s.Condition = rewriteExpr(s.Condition)
		rewriteStmts(s.Stmts)
	case *ast.IfStmt:
		s.Condition = rewriteExpr(s.Condition)
		rewriteStmts(s.Then)
		rewriteStmts(s.Else)
	case *ast.NumberForStmt:
		s.Init = plainExpr(s.Init)
		s.Limit = plainExpr(s.Limit)
		s.Step = plainExpr(s.Step)
		rewriteStmts(s.Stmts)
	case *ast.GenericForStmt:
		rewriteExprs(s.Exprs)
		rewriteStmts(s.Stmts)
	case *ast.FuncDefStmt:
		if s.Name != nil {
			s.Name.Func = rewriteExpr(s.Name.Func)
			s.Name.Receiver = rewriteExpr(s.Name.Receiver)
		}
		rewriteStmts(s.Func.Stmts)
	case *ast.ReturnStmt:
		rewriteExprs(s.Exprs)
	}
}

func rewriteExpr(ex ast.Expr) ast.Expr {
	switch x := ex.(type) {
	case nil:
		return nil
	case *ast.NumberExpr:
		n, err := parseLiteral(x.Value)
		if err != nil || !n.boxed() {
			return x
		}
		lit := &ast.StringExpr{Value: x.Value}
		lit.SetLine(x.Line())
		lit.SetLastLine(x.LastLine())
		return helperCall("_num_literal", x, lit)
	case *ast.AttrGetExpr:
		x.Object = rewriteExpr(x.Object)
		x.Key = plainExpr(x.Key)
	case *ast.TableExpr:
		for _, f := range x.Fields {
			f.Key = plainExpr(f.Key)
			f.Value = rewriteExpr(f.Value)
		}
	case *ast.FuncCallExpr:
		x.Func = rewriteExpr(x.Func)
		x.Receiver = rewriteExpr(x.Receiver)
		rewriteExprs(x.Args)
	case *ast.LogicalOpExpr:
		x.Lhs = rewriteExpr(x.Lhs)
		x.Rhs = rewriteExpr(x.Rhs)
	case *ast.RelationalOpExpr:
		return helperCall(relationFuncs[x.Operator], x, rewriteExpr(x.Lhs), rewriteExpr(x.Rhs))
	case *ast.StringConcatOpExpr:
		x.Lhs = rewriteExpr(x.Lhs)
		x.Rhs = rewriteExpr(x.Rhs)
	case *ast.ArithmeticOpExpr:
		x.Lhs = rewriteExpr(x.Lhs)
		x.Rhs = rewriteExpr(x.Rhs)
	case *ast.UnaryMinusOpExpr:
		x.Expr = rewriteExpr(x.Expr)
	case *ast.UnaryNotOpExpr:
		x.Expr = rewriteExpr(x.Expr)
	case *ast.UnaryLenOpExpr:
		x.Expr = rewriteExpr(x.Expr)
	case *ast.FunctionExpr:
		rewriteStmts(x.Stmts)
	}
	return ex
}
