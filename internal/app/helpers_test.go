package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args, feeding stdin and capturing
// everything written to stdout and stderr. Flags are reset first, the
// config directory points at a temp dir and prompts use the line readers.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	oldInteractive := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = oldInteractive })

	resetFlags(RootCmd)
	t.Cleanup(func() { appConfig = nil })

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetIn(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.ExecuteContext(ctx)
	return out.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
// Slice flags append once set, so their variables are cleared directly.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Value.Type() != "stringSlice" {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}

	scanExclude, listExclude, manageExclude, cleanExclude, watchExclude = nil, nil, nil, nil, nil
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	mkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0644); err != nil {
		t.Fatal(err)
	}
}

// makeProject creates root/name with a package.json and a node_modules
// holding one package. If age is positive the node_modules directory is
// backdated by that much.
func makeProject(t *testing.T, root, name string, age time.Duration) string {
	t.Helper()
	project := filepath.Join(root, name)
	writeFile(t, filepath.Join(project, "package.json"), 20)
	nm := filepath.Join(project, "node_modules")
	writeFile(t, filepath.Join(nm, "left-pad", "index.js"), 100)
	writeFile(t, filepath.Join(nm, "left-pad", "package.json"), 10)

	if age > 0 {
		old := time.Now().Add(-age)
		if err := os.Chtimes(nm, old, old); err != nil {
			t.Fatal(err)
		}
	}
	return nm
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
