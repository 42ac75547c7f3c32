package boot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/llir/llvm/ir"
)

// Toolchain names the external programs that turn IR into an executable.
type Toolchain struct {
	LLC    string
	CC     string
	Logger *slog.Logger
}

// DefaultToolchain uses llc and gcc from PATH.
func DefaultToolchain() Toolchain {
	return Toolchain{LLC: "llc", CC: "gcc"}
}

// Build writes m to output.ll, assembles it to output.s with llc and links
// output with the C compiler.
func (tc Toolchain) Build(ctx context.Context, m *ir.Module, output string) error {
	ll, asm := output+".ll", output+".s"
	if err := os.WriteFile(ll, []byte(m.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ll, err)
	}
	if err := tc.run(ctx, tc.LLC, "-o", asm, ll); err != nil {
		return err
	}
	return tc.run(ctx, tc.CC, "-o", output, asm)
}

func (tc Toolchain) run(ctx context.Context, name string, args ...string) error {
	if tc.Logger != nil {
		tc.Logger.Debug("exec", slog.String("cmd", name), slog.Any("args", args))
	}

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", name, err, out)
	}
	return nil
}
