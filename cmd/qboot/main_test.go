package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func runQboot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	exit := func(code int) {
		t.Fatalf("qboot exited with %d:\n%s", code, stderr.String())
	}
	err := run(context.Background(), args, output{&stdout, &stderr}, exit)
	return stdout.String(), stderr.String(), err
}

func TestEmitLLVM(t *testing.T) {
	t.Parallel()

	stdout, _, err := runQboot(t, "--emit-llvm", "(42)")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	for _, want := range []string{"@printf", "@main", "i32 42"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("IR does not contain %q:\n%s", want, stdout)
		}
	}
}

func TestNegativeTerm(t *testing.T) {
	t.Parallel()

	stdout, _, err := runQboot(t, "--emit-llvm", "--", "-7")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(stdout, "i32 -7") {
		t.Errorf("IR does not contain the negated constant:\n%s", stdout)
	}
}

func TestBadTerm(t *testing.T) {
	t.Parallel()

	if _, _, err := runQboot(t, "--emit-llvm", "forty"); err == nil {
		t.Errorf("run accepted a non-integer term")
	}
}

func TestBuildWithStubToolchain(t *testing.T) {
	t.Parallel()

	stub, err := exec.LookPath("true")
	if err != nil {
		t.Skip("no true(1) on PATH")
	}

	output := filepath.Join(t.TempDir(), "prog")
	stdout, stderr, err := runQboot(t, "-v", "--llc", stub, "--cc", stub, "-o", output, "5")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if stdout != "ok\n" {
		t.Errorf("stdout = %q, want ok", stdout)
	}
	if !strings.Contains(stderr, "msg=exec") {
		t.Errorf("verbose run logged nothing:\n%s", stderr)
	}
	if _, err := os.Stat(output + ".ll"); err != nil {
		t.Errorf("IR was not written: %v", err)
	}
}
