package cliutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var (
		b bool
		s string
	)
	fs.BoolVar(&b, "quiet", false, "")
	fs.StringVar(&s, "method", "", "")

	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{
		"a.txt", "--quiet", "--method", "porthodomO2", "-", "--output=x.tsv", "--", "--weird.txt",
	})
	assert.Equal(t, []string{"--quiet", "--method", "porthodomO2", "--output=x.tsv"}, flagArgs)
	assert.Equal(t, []string{"a.txt", "-", "--weird.txt"}, posArgs)
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.nbh", "a.nbh", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	got, err := ExpandPositionals([]string{"-", filepath.Join(dir, "*.nbh"), "plain.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-", filepath.Join(dir, "a.nbh"), filepath.Join(dir, "b.nbh"), "plain.txt"}, got)

	_, err = ExpandPositionals([]string{filepath.Join(dir, "*.none")})
	require.Error(t, err)
}
