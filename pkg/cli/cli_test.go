package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the command line in an empty working directory so no
// manifest is picked up from the source tree.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// chdir changes the working directory for the rest of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestCheckCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := run(t, "", "check", "--plain")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if strings.Contains(out, "TEST FAIL") {
		t.Errorf("unexpected failure:\n%s", out)
	}
	for _, want := range []string{
		`TEST PASS: xxreadtoken$softbound("(")`,
		`TEST PASS: xxreadtoken$softbound("|x") pending: {"got":"x","want":"x"}`,
		"18 passed, 0 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLexCommand(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"lex", "a", "&&", "b"}, "TWORD(\"a\")\nTAND\nTWORD(\"b\")\nTEOF\n"},
		{"stdin", "x|y\n", []string{"lex"}, "TWORD(\"x\")\nTPIPE\nTWORD(\"y\")\nTNL\nTEOF\n"},
		{"empty", "", []string{"lex", ""}, "TEOF\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("lex failed: %v", err)
			}
			if out != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", out, tt.want)
			}
		})
	}
}

func TestLexUnterminatedQuote(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := run(t, "", "lex", `echo "abc`); err == nil {
		t.Fatal("expected an error for an unterminated quote")
	}
}

func TestModelsCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := run(t, "", "models")
	if err != nil {
		t.Fatalf("models failed: %v", err)
	}
	for _, want := range []string{"ID", "ash-syntax-classes", "token-enum", "xxreadtoken", "Function", "PEOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestManifestFlag(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := run(t, "", "models", "--yaml")
	if err != nil {
		t.Fatalf("models --yaml failed: %v", err)
	}
	path := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err = run(t, "", "--manifest", path, "check", "--plain")
	if err != nil {
		t.Fatalf("check with manifest failed: %v\n%s", err, out)
	}

	// A softbind.yaml in the working directory is found without the flag.
	if err := os.Rename(path, filepath.Join(dir, "softbind.yaml")); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "", "-v", "lex", "a;b")
	if err != nil {
		t.Fatalf("lex with found manifest failed: %v", err)
	}
	if !strings.Contains(out, "using manifest") || !strings.Contains(out, "TSEMI") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCheckFailsWithoutClassifier(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	manifest := "enums:\n  - id: token-enum\n    values: [TEOF, TNL]\n"
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "--manifest", path, "check", "--plain")
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if !strings.Contains(out, "not found: $Function:xxreadtoken") {
		t.Errorf("output missing resolve failure:\n%s", out)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	db := filepath.Join(dir, "models.db")

	out, err := run(t, "", "export", db)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "exported 4 models") {
		t.Errorf("unexpected export output: %s", out)
	}

	out, err = run(t, "", "import", db)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	for _, want := range []string{"id: xxreadtoken", "body: xxreadtoken", "PEOF:"} {
		if !strings.Contains(out, want) {
			t.Errorf("import output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "", "--catalog", db, "check", "--plain")
	if err != nil {
		t.Fatalf("check against catalog failed: %v\n%s", err, out)
	}
}

func TestImportMissingCatalog(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	db := filepath.Join(dir, "missing.db")

	if _, err := run(t, "", "import", db); err == nil {
		t.Fatal("expected an error for a missing catalog")
	}
	if _, err := os.Stat(db); !os.IsNotExist(err) {
		t.Errorf("import created %s", db)
	}
}
