package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckFilesAllValid(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.bf", "+[-]")
	b := writeFile(t, dir, "b.bf", "just a comment")
	require.Nil(t, checkFiles([]string{a, b}))
}

func TestCheckFilesAggregatesErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.bf", "+.")
	badOpen := writeFile(t, dir, "open.bf", "[++")
	badClose := writeFile(t, dir, "close.bf", "++]")
	missing := filepath.Join(dir, "missing.bf")

	err := checkFiles([]string{good, badOpen, badClose, missing})
	require.NotNil(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)
}
