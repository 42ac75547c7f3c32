package boot

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// Lower returns a module whose main prints n followed by a newline and
// returns 0.
func Lower(n int32) *ir.Module {
	m := ir.NewModule()

	printf := m.NewFunc("printf", types.I32, ir.NewParam("format", types.NewPointer(types.I8)))
	printf.Sig.Variadic = true

	format := m.NewGlobalDef("format_string", constant.NewCharArrayFromString("%d\n\x00"))
	format.Immutable = true

	zero := constant.NewInt(types.I32, 0)

	main := m.NewFunc("main", types.I32)
	entry := main.NewBlock("entry")
	ptr := entry.NewGetElementPtr(format.ContentType, format, zero, zero)
	entry.NewCall(printf, ptr, constant.NewInt(types.I32, int64(n)))
	entry.NewRet(zero)

	return m
}
