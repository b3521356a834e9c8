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

// Package instr models a procedure body: a tree of plain opcodes, invoke
// sites, and control-flow blocks. Two passes walk this tree in place:
// ConstEvalVisitor (rewrites named-immediate operands to concrete literals)
// and InvokeTargetVerifier (classifies and validates call sites) — see
// pkg/masm/sema.
package instr

import (
	"github.com/consensys/go-corset/pkg/masm/ast/expr"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/ast/value"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Instruction is one node of a procedure body.
type Instruction interface {
	Span() source.Span
	instruction()
}

// Body is an ordered sequence of instructions, e.g. a procedure's top-level
// body or the then/else arm of an If.
type Body []Instruction

// Immediate is an operand whose concrete value is either already a literal
// or still a named reference to a constant, plus the kind the owning
// instruction requires of it. Expr holds the as-parsed expression (a
// Literal or a Reference); ConstEvalVisitor evaluates it and populates
// Resolved in place.
type Immediate struct {
	Expected Value
	Expr     expr.Expr
	// Resolved is filled in by ConstEvalVisitor once the immediate's
	// concrete value is known; nil until then.
	Resolved *value.Value
}

// Value is re-exported so callers constructing an Immediate do not need a
// second import for the expected-kind type.
type Value = value.Kind

// Op is a plain opcode, optionally carrying a single named/literal
// immediate operand (e.g. push.CONST, locaddr.N). Instructions with more
// than one immediate in the source dialect are represented as repeated Op
// nodes by the parser upstream; the core only needs to see the operand it
// must const-fold.
type Op struct {
	SpanValue source.Span
	Mnemonic  string
	Immediate *Immediate
}

// Span implements Instruction.
func (o *Op) Span() source.Span { return o.SpanValue }
func (*Op) instruction()        {}

// InvokeKind classifies a call site.
type InvokeKind uint8

const (
	// Exec is a normal procedure invocation, local or imported.
	Exec InvokeKind = iota
	// Call is an invocation requiring a fresh execution context; forbidden
	// inside a Kernel procedure.
	Call
	// Syscall is an invocation of a kernel procedure; forbidden inside a
	// Kernel procedure (kernels cannot syscall into themselves).
	Syscall
	// DynExec invokes a procedure identified by a runtime hash value on the
	// stack, without a context switch.
	DynExec
	// DynCall invokes a procedure identified by a runtime hash value on the
	// stack, with a fresh execution context.
	DynCall
	// ProcRef takes a reference to a procedure without invoking it.
	ProcRef
)

// String implements fmt.Stringer.
func (k InvokeKind) String() string {
	switch k {
	case Exec:
		return "exec"
	case Call:
		return "call"
	case Syscall:
		return "syscall"
	case DynExec:
		return "dynexec"
	case DynCall:
		return "dyncall"
	case ProcRef:
		return "procref"
	default:
		return "unknown"
	}
}

// IsDynamic reports whether this invoke kind targets a runtime hash value
// rather than a statically-named procedure.
func (k InvokeKind) IsDynamic() bool {
	return k == DynExec || k == DynCall
}

// Invoke is a call site: exec/call/syscall/dyncall/dynexec/procref. For
// statically-named kinds, Alias is nil for a local callee and
// non-nil for a qualified `alias::name` callee. For dynamic kinds, Alias and
// Name are unused; the runtime hash value is supplied on the operand stack
// by the instruction stream itself (outside this AST's concern).
type Invoke struct {
	SpanValue source.Span
	Kind      InvokeKind
	Alias     *ident.Identifier
	Name      ident.Identifier
}

// Span implements Instruction.
func (i *Invoke) Span() source.Span { return i.SpanValue }
func (*Invoke) instruction()        {}

// IsQualified reports whether this invoke names an import alias.
func (i *Invoke) IsQualified() bool {
	return i.Alias != nil
}

// If is a two-armed conditional block; the branch condition is implicit
// (top-of-stack), consistent with this dialect's stack semantics.
type If struct {
	SpanValue source.Span
	Then      Body
	Else      Body
}

// Span implements Instruction.
func (n *If) Span() source.Span { return n.SpanValue }
func (*If) instruction()        {}

// While is a pre-condition loop.
type While struct {
	SpanValue source.Span
	Body      Body
}

// Span implements Instruction.
func (n *While) Span() source.Span { return n.SpanValue }
func (*While) instruction()        {}

// Repeat is a fixed-count loop; Count is a named or literal Integer-kind
// immediate, resolved by ConstEvalVisitor the same way an Op's Immediate
// is.
type Repeat struct {
	SpanValue source.Span
	Count     *Immediate
	Body      Body
}

// Span implements Instruction.
func (n *Repeat) Span() source.Span { return n.SpanValue }
func (*Repeat) instruction()        {}
