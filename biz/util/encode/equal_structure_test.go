package encode

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Equal must delegate byte comparison to crypto/subtle instead of an
// early-exit loop or bytes.Equal.
func TestEqual_UsesConstantTimeCompare(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "encode.go", nil, 0)
	if err != nil {
		t.Fatalf("parse encode.go: %v", err)
	}

	var found, forbidden bool
	ast.Inspect(f, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "Equal" {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			switch x := n.(type) {
			case *ast.SelectorExpr:
				if pkg, ok := x.X.(*ast.Ident); ok {
					if pkg.Name == "subtle" && x.Sel.Name == "ConstantTimeCompare" {
						found = true
					}
					if pkg.Name == "bytes" {
						forbidden = true
					}
				}
			case *ast.RangeStmt, *ast.ForStmt:
				forbidden = true
			}
			return true
		})
		return false
	})

	assert.True(t, found, "Equal does not call subtle.ConstantTimeCompare")
	assert.False(t, forbidden, "Equal compares bytes itself")
}
