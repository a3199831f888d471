package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCLIApp_Commands(t *testing.T) {
	app := newCLIApp()

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	require.True(t, names["tools"])
	require.True(t, names["whoami"])
}

func TestToolsCommand_ListsToolNames(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	app := newCLIApp()
	runErr := app.Run([]string{"linear-mcp", "tools"})
	w.Close()
	os.Stdout = orig

	require.NoError(t, runErr)
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	lines := strings.Fields(string(out))
	require.Contains(t, lines, "linear_create_issue")
	require.Contains(t, lines, "linear_get_workspace")
	require.Len(t, lines, 13)
}
