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
package sema

import (
	"fmt"

	"github.com/consensys/go-corset/pkg/masm/ast"
	"github.com/consensys/go-corset/pkg/masm/ast/instr"
	"github.com/consensys/go-corset/pkg/masm/diag"
)

// ConstEvalVisitor rewrites a procedure body's named-immediate operands to
// their evaluated concrete values in place. It embeds instr.BaseVisitor and
// overrides only the two variants that carry an Immediate; instr.Walk still
// reaches every nested instruction. It never aborts on the first mismatch —
// every Op/Repeat in the body is visited regardless of earlier failures.
type ConstEvalVisitor struct {
	instr.BaseVisitor
	ctx  *AnalysisContext
	eval *ConstantEvaluator
}

// NewConstEvalVisitor constructs a visitor that resolves immediates through
// eval, reporting mismatches through ctx.
func NewConstEvalVisitor(ctx *AnalysisContext, eval *ConstantEvaluator) *ConstEvalVisitor {
	return &ConstEvalVisitor{ctx: ctx, eval: eval}
}

// VisitOp resolves op's immediate, if it carries one.
func (v *ConstEvalVisitor) VisitOp(op *instr.Op) {
	v.resolve(op.Immediate)
}

// VisitRepeat resolves the loop-count immediate before Walk recurses into
// the loop body.
func (v *ConstEvalVisitor) VisitRepeat(n *instr.Repeat) {
	v.resolve(n.Count)
}

func (v *ConstEvalVisitor) resolve(imm *instr.Immediate) {
	if imm == nil || imm.Resolved != nil {
		return
	}

	val, ok := v.eval.Eval(imm.Expr)
	if !ok {
		// The evaluator already reported its own diagnostic (UndefinedConstant,
		// ConstantCycle, ImmediateTypeMismatch, ...); nothing further to do.
		return
	}

	if val.Kind != imm.Expected {
		v.ctx.Errorf(diag.ImmediateTypeMismatch, imm.Expr.Span(),
			fmt.Sprintf("immediate expects a %s value, found %s", imm.Expected, val.Kind))

		return
	}

	resolved := val
	imm.Resolved = &resolved
}

// InvokeTargetVerifier classifies and validates every call site in a
// procedure body. It does not resolve cross-module targets to concrete MAST
// roots — only that every target is syntactically resolvable given the
// current module's imports and locals.
type InvokeTargetVerifier struct {
	instr.BaseVisitor
	ctx      *AnalysisContext
	module   *ast.Module
	isKernel bool
}

// NewInvokeTargetVerifier constructs a verifier over module, reporting
// diagnostics through ctx.
func NewInvokeTargetVerifier(ctx *AnalysisContext, module *ast.Module) *InvokeTargetVerifier {
	return &InvokeTargetVerifier{ctx: ctx, module: module, isKernel: module.Kind == ast.Kernel}
}

// VisitInvoke classifies inv: call/syscall are forbidden inside a kernel
// procedure; dynamic kinds (dynexec/dyncall) target a runtime hash value
// and need no static resolution; qualified invocations must resolve through
// the import table (marking it used); unqualified invocations must name a
// locally-registered procedure.
func (v *InvokeTargetVerifier) VisitInvoke(inv *instr.Invoke) {
	switch inv.Kind {
	case instr.Call:
		if v.isKernel {
			v.ctx.Errorf(diag.KernelCall, inv.Span(), "`call` is forbidden inside a kernel procedure")
		}
	case instr.Syscall:
		if v.isKernel {
			v.ctx.Errorf(diag.KernelSyscall, inv.Span(), "`syscall` is forbidden inside a kernel procedure")
		}
	case instr.Exec, instr.DynExec, instr.DynCall, instr.ProcRef:
		// No kernel restriction for these kinds.
	}

	if inv.Kind.IsDynamic() {
		return
	}

	if inv.IsQualified() {
		if imp := v.module.FindImport(*inv.Alias); imp != nil {
			imp.MarkUsed()
		} else {
			v.ctx.Errorf(diag.MissingImport, inv.Span(), "no import bound to alias `"+inv.Alias.String()+"`")
		}

		return
	}

	if !v.ctx.HasLocalProcedure(inv.Name) {
		v.ctx.Errorf(diag.UndefinedCallee, inv.Span(), "undefined procedure `"+inv.Name.String()+"`")
	}
}
