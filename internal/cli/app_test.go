package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethan-wit/moving-items/internal/auth"
	"github.com/ethan-wit/moving-items/internal/config"
	"github.com/ethan-wit/moving-items/internal/metrics"
)

const testPassword = "Abc123!@"

// runApp plays script against a fresh database and returns what was printed.
func runApp(t *testing.T, cfg *config.Config, script string) (string, error) {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.DBPath == config.Default().DBPath {
		cfg.DBPath = filepath.Join(t.TempDir(), "items.db")
	}

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := NewApp(cfg, strings.NewReader(script), &out, metrics.New(), logger)

	err := app.Run(context.Background())
	return out.String(), err
}

func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

func TestAppMovingSession(t *testing.T) {
	out, err := runApp(t, nil, lines(
		"signup", testPassword, "yes",
		"input new item", "boxes", "10", "2",
		"view items",
		"update item's desired quantity", "boxes", "15",
		"update item's quantity", "boxes", "5",
		"view item's quantity and desired quantity", "boxes",
		"clear item quantities", "yes",
		"delete item", "boxes",
		"view items",
		"log off",
	))
	require.NoError(t, err)

	assert.Contains(t, out, "You have been assigned the username:")
	assert.Contains(t, out, "Password accepted. User logged in.")
	assert.Contains(t, out, "boxes has been added to your list")
	assert.Contains(t, out, "STILL NEEDED")
	assert.Contains(t, out, "0 of 1 items complete, 8 still needed (20%)")
	assert.Contains(t, out, "Desired quantity of boxes is now 15")
	assert.Contains(t, out, "Quantity of boxes is now 5")
	assert.Contains(t, out, "All item quantities set to zero (1 items).")
	assert.Contains(t, out, "boxes has been removed from your list")
	assert.Contains(t, out, "Your list is empty.")
	assert.Contains(t, out, "You will now be logged off, and the program will end.")
}

func TestAppGreeting(t *testing.T) {
	t.Run("re-prompts until signup or login", func(t *testing.T) {
		out, err := runApp(t, nil, lines("register", "LOGIN", "signup", testPassword, "no"))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, `You did not input "signup" or "login".`))
		assert.Contains(t, out, "Thank you. The program will now end.")
	})

	t.Run("re-prompts until the password meets the policy", func(t *testing.T) {
		out, err := runApp(t, nil, lines("signup", "short", "abc123!@", testPassword, "no"))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "Password did not meet criteria."))
		assert.Contains(t, out, "You have been assigned the username:")
	})

	t.Run("anything but yes or no after signup ends the program", func(t *testing.T) {
		out, err := runApp(t, nil, lines("signup", testPassword, "maybe"))
		require.NoError(t, err)
		assert.Contains(t, out, "Invalid response. The program will now end.")
		assert.NotContains(t, out, "User logged in.")
	})

	t.Run("unknown username is fatal", func(t *testing.T) {
		out, err := runApp(t, nil, lines("login", "12345678", testPassword))
		require.ErrorIs(t, err, auth.ErrUserNotFound)
		assert.Contains(t, out, "Matching username not found.")
	})

	t.Run("input ends before a choice", func(t *testing.T) {
		_, err := runApp(t, nil, "")
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestAppWrongPassword(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "items.db")

	out, err := runApp(t, cfg, lines("signup", testPassword, "no"))
	require.NoError(t, err)
	username := assignedUsername(t, out)

	out, err = runApp(t, cfg, lines("login", username, "Wrong12!"))
	require.ErrorIs(t, err, auth.ErrPasswordMismatch)
	assert.Contains(t, out, "User found.")
	assert.Contains(t, out, "Matching password not found.")

	out, err = runApp(t, cfg, lines("login", username, testPassword, "view items", "log off"))
	require.NoError(t, err)
	assert.Contains(t, out, "Your list is empty.")
}

func TestAppItemsOutliveSession(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "items.db")

	out, err := runApp(t, cfg, lines("signup", testPassword, "yes", "input new item", "lamp", "3", "1", "log off"))
	require.NoError(t, err)
	username := assignedUsername(t, out)

	out, err = runApp(t, cfg, lines("login", username, testPassword, "view item's quantity and desired quantity", "lamp", "log off"))
	require.NoError(t, err)
	assert.Contains(t, out, "lamp")
	assert.NotContains(t, out, "is not on your list")
}

func TestAppWritesMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.MetricsTextfile = filepath.Join(t.TempDir(), "moving_items.prom")

	_, err := runApp(t, cfg, lines("signup", testPassword, "yes", "input new item", "boxes", "1", "0", "log off"))
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `moving_items_operations_total{operation="create_item",result="ok"} 1`)
	assert.Contains(t, string(data), "moving_items_auth_attempts_total")
}

func TestAppBadHasher(t *testing.T) {
	cfg := config.Default()
	cfg.Hasher = "md5"

	_, err := runApp(t, cfg, lines("login", "12345678", testPassword))
	assert.Error(t, err)
}

// assignedUsername pulls the 8-digit username out of the signup message.
func assignedUsername(t *testing.T, out string) string {
	t.Helper()

	const marker = "assigned the username: "
	i := strings.Index(out, marker)
	require.GreaterOrEqual(t, i, 0, "no username in output")
	username := out[i+len(marker):][:8]
	require.Len(t, strings.Trim(username, "0123456789"), 0, "username %q is not numeric", username)
	return username
}
