package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coworking/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "coworkctl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"migrate", "create-admin", "run-jobs"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "migrate", "--print", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestMigratePrint(t *testing.T) {
	out, err := execute(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS bookings")
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS users")
}

func TestCreateAdmin_RequiredFlags(t *testing.T) {
	_, err := execute(t, "create-admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")
}

func TestCreateAdmin_ShortPassword(t *testing.T) {
	_, err := execute(t, "create-admin", "--email", "ops@example.com", "--password", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestCreateAdmin_Defaults(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"create-admin"})
	require.NoError(t, err)

	assert.Equal(t, "Admin", sub.Flags().Lookup("first-name").DefValue)
	assert.Equal(t, "User", sub.Flags().Lookup("last-name").DefValue)
}

func TestPrintResult(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, "text", "Booking jobs finished", map[string]any{
			"completed": int64(2),
			"cancelled": int64(1),
		}))
		assert.Equal(t, "Booking jobs finished\n  cancelled: 1\n  completed: 2\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, "json", "Admin created", map[string]any{"id": 7}))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Admin created", got["message"])
		assert.Equal(t, float64(7), got["id"])
	})
}

func TestDescribe(t *testing.T) {
	err := describe(apperrors.Validation([]apperrors.FieldError{
		{Field: "email", Message: "email must be a valid email address"},
	}))
	assert.Equal(t, "Validation failed: email: email must be a valid email address", err.Error())

	assert.Equal(t, "Email already registered", describe(apperrors.Conflict("Email already registered")).Error())
}
