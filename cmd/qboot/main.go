// Command qboot compiles an integer term to an executable that prints it.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/takoeight0821/q/boot"
)

type CLI struct {
	Term     string `arg:"" help:"Integer term such as 42 or (7). Put -- before a negative term."`
	Output   string `default:"output" help:"Executable to write." short:"o" type:"path"`
	EmitLLVM bool   `help:"Print the LLVM IR instead of building." name:"emit-llvm"`
	LLC      string `default:"llc" env:"Q_LLC" help:"LLVM static compiler."`
	CC       string `default:"gcc" env:"CC" help:"C compiler used to link."`
	Verbose  bool   `help:"Log every external command." short:"v"`
}

func (c *CLI) Run(ctx context.Context, out output) error {
	n, err := boot.ParseTerm(c.Term)
	if err != nil {
		return err
	}

	m := boot.Lower(n)
	if c.EmitLLVM {
		_, err := fmt.Fprint(out.stdout, m)
		return err
	}

	tc := boot.Toolchain{LLC: c.LLC, CC: c.CC}
	if c.Verbose {
		tc.Logger = slog.New(slog.NewTextHandler(out.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if err := tc.Build(ctx, m, c.Output); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out.stdout, "ok")
	return err
}

type output struct {
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, out output, exit func(int)) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("qboot"),
		kong.Description("Compile an integer term to a native executable that prints it."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(out.stdout, out.stderr),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(out),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return ktx.Run()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], output{os.Stdout, os.Stderr}, os.Exit); err != nil {
		fmt.Fprintln(os.Stderr, "qboot:", err)
		stop()
		os.Exit(1)
	}
}
