/*
Package latex drives a LaTeX compiler over a generated document inside
a throwaway workspace directory. The hmm and tikz packages know nothing
about processes or temporary files; everything of that kind lives here.
*/
package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// The two compilers the tool knows how to drive. LuaLaTeX is the
// default; pdflatex runs out of memory on larger models.
const (
	LuaLaTeX = "lualatex"
	PDFLaTeX = "pdflatex"
)

// ErrNoCompiler is returned by Check when the requested compiler
// cannot be executed at all.
var ErrNoCompiler = errors.New("latex: compiler not found")

// Check reports whether the compiler can be executed, by running it
// with '--version'.
func Check(compiler string) error {
	cmd := exec.Command(compiler, "--version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", ErrNoCompiler, compiler)
	}
	return nil
}

// A Workspace is a uniquely named temporary directory holding one
// compile job. It is not safe for concurrent use.
type Workspace struct {
	dir  string
	name string // job name, the basename of the .tex file
}

// NewWorkspace creates the job directory under the system temporary
// directory.
func NewWorkspace(name string) (*Workspace, error) {
	dir := filepath.Join(os.TempDir(), "hmmer2pdf-"+uuid.NewString())
	if err := os.Mkdir(dir, 0700); err != nil {
		return nil, fmt.Errorf("Error creating workspace: %s", err)
	}
	return &Workspace{dir: dir, name: name}, nil
}

// Dir returns the workspace directory. Useful for pointing a user at
// the .log file after a failed compile.
func (ws *Workspace) Dir() string {
	return ws.dir
}

// TexPath returns the path of the job's .tex file.
func (ws *Workspace) TexPath() string {
	return filepath.Join(ws.dir, ws.name+".tex")
}

// WriteDocument stores the document bytes as the job's .tex file.
func (ws *Workspace) WriteDocument(doc []byte) error {
	if err := os.WriteFile(ws.TexPath(), doc, 0600); err != nil {
		return fmt.Errorf("Error writing document: %s", err)
	}
	return nil
}

// Compile runs the compiler on the job in batch mode. The context
// bounds the compile; cancelling it kills the compiler process. On
// failure the workspace is left in place so its .log file can be
// inspected.
func (ws *Workspace) Compile(ctx context.Context, compiler string) error {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, compiler, "--interaction", "batchmode", ws.name)
	cmd.Dir = ws.dir
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("Error compiling '%s' with %s: %s", ws.TexPath(), compiler, err)
	}
	return nil
}

// CopyPDF writes the compiled PDF to w.
func (ws *Workspace) CopyPDF(w io.Writer) error {
	f, err := os.Open(filepath.Join(ws.dir, ws.name+".pdf"))
	if err != nil {
		return fmt.Errorf("Error opening compiled PDF: %s", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("Error copying compiled PDF: %s", err)
	}
	return nil
}

// Remove deletes the workspace and everything in it.
func (ws *Workspace) Remove() error {
	return os.RemoveAll(ws.dir)
}
