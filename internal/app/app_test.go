package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/carteira/internal/config"
	"github.com/hance08/carteira/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/carteira.db", filepath.Join(home, "carteira.db")},
		{"/tmp/carteira.db", "/tmp/carteira.db"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadOrCreateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.key")

	first, err := loadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := loadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestApp_SharedFeed(t *testing.T) {
	cfg := config.NewDefault()
	a := &App{Config: cfg}
	assert.False(t, a.SharedFeed())

	cfg.Realtime.Driver = "amqp"
	assert.True(t, a.SharedFeed())
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Driver = "mysql"

	_, _, err := NewApp(context.Background(), cfg, os.DirFS("../.."))
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestNewApp_LocalStack(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	cfg := config.NewDefault()
	a, cleanup, err := NewApp(context.Background(), cfg, os.DirFS("../.."))
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, filepath.Join(dir, "carteira"), a.AppDir)
	assert.FileExists(t, filepath.Join(a.AppDir, "carteira.db"))
	assert.FileExists(t, filepath.Join(a.AppDir, "session.key"))

	ctx := context.Background()
	_, err = a.RequireUser(ctx)
	require.Error(t, err)

	profile, err := a.Identity.SignUp(ctx, "ana@example.com", "Ana", "S3cret-pass!")
	require.NoError(t, err)

	id, err := a.RequireUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, id)

	engine := a.NewLedger(noopNotifier{}, nil)
	defer engine.Close()
	require.NoError(t, engine.Mount(ctx))

	_, err = a.Service.Transaction.Create(ctx, profile.ID, service.NewTransaction{AmountRaw: "12,50", Kind: "groceries"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(engine.State().Items) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}
