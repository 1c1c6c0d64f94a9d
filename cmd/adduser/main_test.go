package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dsnIn(t *testing.T, name string) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), name)
}

func TestRunSuccess(t *testing.T) {
	stdout := new(bytes.Buffer)
	args := []string{"-email", "ann@example.com", "-password", "secret", "-db", dsnIn(t, "ok.db")}

	err := run(context.Background(), args, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User ann@example.com created successfully")
}

func TestRunDuplicateEmail(t *testing.T) {
	args := []string{"-email", "ann@example.com", "-password", "secret", "-db", dsnIn(t, "dup.db")}

	require.NoError(t, run(context.Background(), args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	err := run(context.Background(), args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunMissingEmail(t *testing.T) {
	stdout := new(bytes.Buffer)

	err := run(context.Background(), []string{"-password", "secret"}, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: email")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRunInteractivePassword(t *testing.T) {
	stdout := new(bytes.Buffer)
	stdin := bytes.NewBufferString("typed_secret\n")
	args := []string{"-email", "typed@example.com", "-db", dsnIn(t, "typed.db")}

	err := run(context.Background(), args, stdin, stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User typed@example.com created successfully")
}

func TestRunEmptyPassword(t *testing.T) {
	err := run(context.Background(), []string{"-email", "x@example.com", "-db", dsnIn(t, "empty.db")}, bytes.NewBufferString("\n"), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email and password cannot be empty")
}

func TestRunWhitespacePasswordAccepted(t *testing.T) {
	stdout := new(bytes.Buffer)
	args := []string{"-email", "blank@example.com", "-password", "   ", "-db", dsnIn(t, "blank.db")}

	err := run(context.Background(), args, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User blank@example.com created successfully")
}

func TestRunDSNFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("DATABASE_URI", "sqlite://"+path)

	err := run(context.Background(), []string{"-email", "env@example.com", "-password", "secret"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRunUnsupportedDSN(t *testing.T) {
	args := []string{"-email", "a@example.com", "-password", "secret", "-db", "mysql://nope"}

	err := run(context.Background(), args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
}

func TestRunInvalidFlag(t *testing.T) {
	err := run(context.Background(), []string{"-invalid"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
