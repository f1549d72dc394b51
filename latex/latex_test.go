package latex

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := NewWorkspace("hmm")
	require.NoError(t, err)
	defer ws.Remove()

	info, err := os.Stat(ws.Dir())
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.True(t, strings.HasSuffix(ws.TexPath(), "hmm.tex"))

	doc := []byte("\\documentclass{standalone}\n")
	require.NoError(t, ws.WriteDocument(doc))
	got, err := os.ReadFile(ws.TexPath())
	require.NoError(t, err)
	require.Equal(t, doc, got)

	require.NoError(t, ws.Remove())
	_, err = os.Stat(ws.Dir())
	require.True(t, os.IsNotExist(err))
}

func TestWorkspacesAreDistinct(t *testing.T) {
	a, err := NewWorkspace("hmm")
	require.NoError(t, err)
	defer a.Remove()
	b, err := NewWorkspace("hmm")
	require.NoError(t, err)
	defer b.Remove()

	require.NotEqual(t, a.Dir(), b.Dir())
}

func TestCheckMissingCompiler(t *testing.T) {
	err := Check("definitely-not-a-latex-compiler")
	require.ErrorIs(t, err, ErrNoCompiler)
}

func TestCompileCancelled(t *testing.T) {
	ws, err := NewWorkspace("hmm")
	require.NoError(t, err)
	defer ws.Remove()
	require.NoError(t, ws.WriteDocument([]byte("\\documentclass{standalone}\n")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = ws.Compile(ctx, "definitely-not-a-latex-compiler")
	require.ErrorIs(t, err, context.Canceled)
}
