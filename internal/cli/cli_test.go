package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/splax/localvercel/accounts/internal/domain"
	"github.com/splax/localvercel/accounts/internal/repository"
	"github.com/splax/localvercel/accounts/internal/repository/memory"
	"github.com/splax/localvercel/accounts/pkg/config"
	"github.com/splax/localvercel/accounts/pkg/crypto"
)

func executeSignup(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "info")
	cmd := NewRootCmdForTest()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"signup", "--dry-run"}, args...))
	return stdout, stderr, cmd.Execute()
}

func runSignup(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	stdout, _, err := executeSignup(t, args...)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))
	return payload, err
}

func TestSignupDryRunSucceeds(t *testing.T) {
	payload, err := runSignup(t,
		"--name", "Teste",
		"--email", "teste_email@gmail.com",
		"--password", "pass",
		"--password-confirmation", "pass",
	)

	require.NoError(t, err)
	assert.Equal(t, float64(200), payload["statusCode"])
	body := payload["body"].(map[string]any)
	assert.Equal(t, "Teste", body["name"])
	assert.NotContains(t, body, "password")
}

func TestSignupDryRunMissingName(t *testing.T) {
	payload, err := runSignup(t,
		"--email", "teste_email@gmail.com",
		"--password", "pass",
		"--password-confirmation", "pass",
	)

	assert.EqualError(t, err, "signup failed with status 400")
	assert.Equal(t, float64(400), payload["statusCode"])
	assert.Equal(t, map[string]any{"name": "MissingParamError", "message": "missing param: name"}, payload["body"])
}

func TestSignupDryRunPasswordMismatch(t *testing.T) {
	payload, err := runSignup(t,
		"--name", "Teste",
		"--email", "teste_email@gmail.com",
		"--password", "pass",
		"--password-confirmation", "other",
	)

	assert.Error(t, err)
	assert.Equal(t, "invalid param: passwordConfirmation", payload["body"].(map[string]any)["message"])
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	cmd := NewRootCmdForTest()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate", "sideways"})

	assert.Error(t, cmd.Execute())
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCmdForTest().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["signup"])
	assert.True(t, names["migrate"])
}

func TestSignupKeepsLogsOffStdout(t *testing.T) {
	stdout, stderr, err := executeSignup(t,
		"--name", "Teste",
		"--email", "teste_email@gmail.com",
		"--password", "pass",
		"--password-confirmation", "pass",
	)
	require.NoError(t, err)

	dec := json.NewDecoder(stdout)
	var payload envelope
	require.NoError(t, dec.Decode(&payload))
	assert.Equal(t, 200, payload.StatusCode)
	assert.ErrorIs(t, dec.Decode(&struct{}{}), io.EOF)

	assert.Contains(t, stderr.String(), "account created")
	assert.Contains(t, stderr.String(), "stored account verified")
}

func TestVerifyStored(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	hash, err := crypto.BcryptEncrypter{Cost: bcrypt.MinCost}.Encrypt(ctx, "pass")
	require.NoError(t, err)
	_, err = repo.Add(ctx, domain.AddAccountInput{Name: "n", Email: "a@b.com", Password: hash})
	require.NoError(t, err)

	assert.NoError(t, verifyStored(ctx, repo, "a@b.com", "pass"))
	assert.ErrorContains(t, verifyStored(ctx, repo, "a@b.com", "other"), "does not match")

	err = verifyStored(ctx, repo, "missing@b.com", "pass")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestNewSignupLimiter(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Nil(t, newSignupLimiter(config.APIConfig{SignupRateLimit: 0}, log))

	limiter := newSignupLimiter(config.APIConfig{SignupRateLimit: 5}, log)
	require.NotNil(t, limiter)
	assert.NoError(t, limiter.Close())

	limiter = newSignupLimiter(config.APIConfig{SignupRateLimit: 5, RateLimitRedisAddr: "127.0.0.1:1"}, log)
	require.NotNil(t, limiter, "falls back to the in-process limiter")
	assert.NoError(t, limiter.Close())
}

func TestMigrationsFS(t *testing.T) {
	_, err := fs.Stat(migrationsFS(config.APIConfig{}), "00001_create_accounts.sql")
	assert.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00002_extra.sql"), []byte("-- +goose Up\n"), 0o600))
	_, err = fs.Stat(migrationsFS(config.APIConfig{MigrationsDir: dir}), "00002_extra.sql")
	assert.NoError(t, err)
}
