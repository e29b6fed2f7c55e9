package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopClient struct{ token string }

func (c *nopClient) Login(context.Context, string, []byte) (string, error) {
	c.token = "tok"
	return "tok", nil
}
func (c *nopClient) Register(context.Context, string, string, []byte) (string, error) {
	return "1", nil
}
func (c *nopClient) Ping(context.Context) error { return nil }
func (c *nopClient) List(context.Context, client.Resource) ([]json.RawMessage, error) {
	return nil, nil
}
func (c *nopClient) Create(context.Context, client.Resource, any) (string, error) { return "1", nil }
func (c *nopClient) Subscribe(context.Context, string) error                     { return nil }
func (c *nopClient) SetToken(t string)                                           { c.token = t }
func (c *nopClient) Token() string                                               { return c.token }

type session struct {
	app   *app.App
	out   *bytes.Buffer
	lines *[]string
}

func (s *session) printed() string { return strings.Join(*s.lines, "\n") }

// play runs script through a fresh REPL over an in-memory app.
func play(t *testing.T, script ...string) *session {
	t.Helper()
	lines := capturePrint(t)

	cfg := config.Defaults()
	cfg.Storage = config.StorageMemory
	cfg.DataDir = t.TempDir()
	cfg.ExportDir = t.TempDir()

	a, err := app.New(context.Background(), cfg,
		app.WithLogOutput(io.Discard),
		app.WithAPIClient(&nopClient{}),
		app.WithToastSurface(consoleSurface{}),
	)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(script, "\n") + "\n"))
	runREPL(context.Background(), NewShell(a, reader, &out), reader)
	return &session{app: a, out: &out, lines: lines}
}

func TestShell_AddListAndToggle(t *testing.T) {
	s := play(t,
		"add habits", "Meditate", "", "", "07:00",
		"list habits",
		"done habits 1",
		"list habits",
	)

	habits := s.app.State.Document().Habits
	require.Len(t, habits, 1)
	assert.Equal(t, "Meditate", habits[0].Name)
	assert.Equal(t, "daily", habits[0].Frequency)
	assert.True(t, habits[0].Completed)

	assert.Contains(t, s.printed(), "* Habit added")
	assert.Contains(t, s.out.String(), "habits (0/1 done)")
	assert.Contains(t, s.out.String(), " 1. [x] Meditate  (07:00)")
}

func TestShell_ValidationIsShownOnce(t *testing.T) {
	s := play(t, "add habits", "", "", "", "")

	assert.Empty(t, s.app.State.Document().Habits)
	assert.Equal(t, 1, strings.Count(s.printed(), "Name: is required"))
	assert.NotContains(t, s.printed(), "Error:")
}

func TestShell_EditKeepsUntouchedFields(t *testing.T) {
	s := play(t,
		"add meals", "Oatmeal", "350", "08:00",
		"edit meals 1", "Porridge", "", "",
	)

	meals := s.app.State.Document().Meals
	require.Len(t, meals, 1)
	assert.Equal(t, "Porridge", meals[0].Name)
	assert.Equal(t, 350, meals[0].Calories)
	assert.Equal(t, "08:00", meals[0].Time)
	assert.False(t, s.app.Modal.IsOpen())
}

func TestShell_WaterAndGoal(t *testing.T) {
	s := play(t, "water", "water 500", "goal 100", "water -5", "home")

	assert.Equal(t, 750, s.app.Hydration.Total())
	assert.Equal(t, 2000, s.app.Hydration.Goal())
	assert.Contains(t, s.printed(), "* Minimum goal is 500 ml")
	assert.Contains(t, s.printed(), "* Amount: must be positive")
	assert.Contains(t, s.out.String(), "Water      750 / 2000 ml (38%)")

	s = play(t, "water", "undo", "undo")
	assert.Zero(t, s.app.Hydration.Total())
	assert.Contains(t, s.printed(), "* Nothing to undo")
}

func TestShell_SelectionQuickActions(t *testing.T) {
	s := play(t,
		"add habits", "A", "", "", "",
		"add habits", "B", "", "", "",
		"add workouts", "Run", "30", "",
		"select habits 1 2",
		"select water 1",
		"delsel",
	)

	assert.Empty(t, s.app.State.Document().Habits)
	assert.Len(t, s.app.State.Document().Workouts, 1)
	assert.Zero(t, s.app.Selection.Count())
	assert.Contains(t, s.printed(), "* 2 item(s) removed")
	assert.Contains(t, s.printed(), "Error: water entries cannot be selected")
}

func TestShell_Navigation(t *testing.T) {
	s := play(t, "go workouts", "go nowhere", "go water")

	assert.Equal(t, "hydration", s.app.Router.Active().Name)
	assert.Contains(t, s.printed(), "Unknown section: nowhere")
	assert.Contains(t, s.out.String(), "no workouts yet")
}

func TestShell_UnknownCollection(t *testing.T) {
	s := play(t, "add snacks", "rm", "frobnicate")

	assert.Contains(t, s.printed(), `Error: unknown collection "snacks"`)
	assert.Contains(t, s.printed(), "Error: usage: rm <collection> <n|id>...")
	assert.Contains(t, s.printed(), "Unknown command: frobnicate")
}

func TestShell_ResetNeedsConfirmation(t *testing.T) {
	s := play(t, "water", "reset", "n")
	assert.Equal(t, 250, s.app.Hydration.Total())

	s = play(t, "water", "reset", "y")
	assert.Zero(t, s.app.Hydration.Total())
	assert.Contains(t, s.printed(), "* All data cleared")
	assert.Equal(t, "home", s.app.Router.Active().Name)
}

func TestShell_PasswordAndDeleteAccount(t *testing.T) {
	stubPasswords(t, "pw1", "pw1", "wrong", "pw1")
	s := play(t,
		"password",
		"add habits", "Keep", "", "", "",
		"delete-account", "y",
		"delete-account", "y",
	)

	out := s.printed()
	assert.Contains(t, out, "* Password changed")
	assert.Contains(t, out, "* Password: is incorrect")
	assert.Contains(t, out, "* Account deleted")
	assert.Empty(t, s.app.State.Document().Habits)
	assert.False(t, s.app.Account.HasPassword())
}

func TestShell_ProfileEdit(t *testing.T) {
	s := play(t,
		"profile edit", "Ana", "not-an-email", "", "",
		"profile edit", "Ana", "ana@example.com", "555", "",
		"profile",
	)

	p := s.app.Account.Profile()
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Contains(t, s.printed(), "* Email: is not a valid address")
	assert.Contains(t, s.out.String(), "Email    ana@example.com")
}

func TestShell_LoginStartsSessionAndSyncNeedsAuth(t *testing.T) {
	stubPasswords(t, "pw")
	s := play(t, "pull", "login ana@example.com", "sessions", "logout")

	out := s.printed()
	assert.Contains(t, out, "* Log in first")
	assert.Contains(t, out, "* Signed in as ana@example.com")
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "* Signed out")
	assert.Len(t, s.app.Account.Sessions(), 1)
	assert.False(t, s.app.Auth.Authenticated())
}

func TestShell_Export(t *testing.T) {
	s := play(t, "add habits", "Read", "", "", "", "export habits", "export")

	entries, err := os.ReadDir(s.app.Config.ExportDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 2)
	assert.True(t, strings.HasPrefix(names[0], "fittracker_export_") || strings.HasPrefix(names[1], "fittracker_export_"))

	b, err := os.ReadFile(filepath.Join(s.app.Config.ExportDir, names[0]))
	require.NoError(t, err)
	assert.True(t, json.Valid(b))
	assert.Contains(t, s.printed(), "* Exported to ")
}

func TestShell_Diag(t *testing.T) {
	s := play(t, "water", "go habits", "diag")

	out := s.out.String()
	assert.Contains(t, out, "Saves     1")
	assert.Contains(t, out, "hydrationLog  1")
	assert.Contains(t, out, "navigate")
}
