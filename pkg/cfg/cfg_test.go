package cfg

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/ast"
)

func TestBuildSimpleReturn(t *testing.T) {
	body := []ast.Statement{
		&ast.ReturnStmt{Value: &ast.Literal{Kind: ast.ByteLiteral, Value: 1}},
	}

	g := Build("f", body)
	g.ComputeReachability()

	if len(g.GetUnreachableNodes()) != 0 {
		t.Fatal("expected no unreachable nodes")
	}
}

func TestUnreachableAfterReturn(t *testing.T) {
	dead := &ast.LocalVarStmt{Decl: ast.VarDecl{Name: "d"}}
	body := []ast.Statement{
		&ast.ReturnStmt{Value: &ast.Literal{Kind: ast.ByteLiteral, Value: 1}},
		dead,
	}

	g := Build("f", body)
	g.ComputeReachability()

	unreachable := g.GetUnreachableNodes()
	if len(unreachable) != 1 || unreachable[0].Statement != dead {
		t.Fatalf("expected exactly the dead statement to be unreachable, got %d nodes", len(unreachable))
	}
}

func TestBreakConnectsToLoopExit(t *testing.T) {
	body := []ast.Statement{
		&ast.WhileStmt{
			Cond: &ast.Literal{Kind: ast.BoolLiteral, Value: true},
			Body: &ast.Block{Statements: []ast.Statement{&ast.BreakStmt{}}},
		},
	}

	g := Build("f", body)
	g.ComputeReachability()

	// Every statement node (the break) should be reachable, and the graph
	// should reach Exit.
	if !g.Node(g.Exit).Reachable {
		t.Fatal("expected Exit to be reachable")
	}
}
