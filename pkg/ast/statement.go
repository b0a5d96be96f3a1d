// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

// Statement is implemented by every statement form (§4.3 pass 4 "structural
// lowering of statements").
type Statement interface {
	Node
	isStatement()
}

// Block is a `{ ... }` sequence opening its own block scope.
type Block struct {
	Annotated
	Statements []Statement
}

func (*Block) isStatement() {}

// LocalVarStmt declares a local variable inside a function body.
type LocalVarStmt struct {
	Annotated
	Decl VarDecl
}

func (*LocalVarStmt) isStatement() {}

// AssignStmt is `target = value;`.
type AssignStmt struct {
	Annotated
	Target Expression
	Value  Expression
}

func (*AssignStmt) isStatement() {}

// ExprStmt is an expression evaluated for its side effects (e.g. a bare
// call to `poke(...)`).
type ExprStmt struct {
	Annotated
	Expr Expression
}

func (*ExprStmt) isStatement() {}

// IfStmt is `if (cond) { then } else { else }` (else may be nil).
type IfStmt struct {
	Annotated
	Cond Expression
	Then *Block
	Else *Block
}

func (*IfStmt) isStatement() {}

// WhileStmt is `while (cond) { body }`.
type WhileStmt struct {
	Annotated
	Cond Expression
	Body *Block
}

func (*WhileStmt) isStatement() {}

// ForStmt is `for n = start to end step stride { body }` (§4.3 pass 4:
// "desugars analogously" to while).
type ForStmt struct {
	Annotated
	Counter string
	Start   Expression
	End     Expression
	Step    Expression // nil means step 1
	Body    *Block
}

func (*ForStmt) isStatement() {}

// ReturnStmt is `return expr;` (expr is nil for a void function).
type ReturnStmt struct {
	Annotated
	Value Expression
}

func (*ReturnStmt) isStatement() {}

// BreakStmt is `break;`.
type BreakStmt struct {
	Annotated
}

func (*BreakStmt) isStatement() {}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Annotated
}

func (*ContinueStmt) isStatement() {}

// BarrierStmt is a bare `barrier;` optimization fence (§4.4 "Barriers").
type BarrierStmt struct {
	Annotated
}

func (*BarrierStmt) isStatement() {}
