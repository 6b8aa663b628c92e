package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cppdeps/internal/adapters/snapshot"
	"go.trai.ch/cppdeps/internal/core/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name: "yaml",
			data: "packages: [fmt, ZLIB]\ntargets:\n  - fmt::fmt\n  - ZLIB::ZLIB\n",
		},
		{
			name: "json",
			data: `{"packages": ["fmt", "ZLIB"], "targets": ["fmt::fmt", "ZLIB::ZLIB"]}`,
		},
		{
			name:    "unknown key",
			data:    "packages: [fmt]\nlibraries: [fmt]\n",
			wantErr: domain.ErrSnapshotParseFailed,
		},
		{
			name:    "empty name",
			data:    "packages: [fmt, \"\"]\n",
			wantErr: domain.ErrSnapshotParseFailed,
		},
		{
			name:    "wrong shape",
			data:    "packages: fmt\n",
			wantErr: domain.ErrSnapshotParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := snapshot.Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			found, err := p.PackageDiscoverable(t.Context(), "ZLIB")
			require.NoError(t, err)
			assert.True(t, found)

			found, err = p.PackageDiscoverable(t.Context(), "zlib")
			require.NoError(t, err)
			assert.False(t, found, "lookups are case-sensitive")

			exists, err := p.TargetExists(t.Context(), "fmt::fmt")
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	p, err := snapshot.Parse(nil)
	require.NoError(t, err)

	found, err := p.PackageDiscoverable(t.Context(), "fmt")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: [spdlog]\ntargets: [spdlog::spdlog]\n"), domain.FilePerm))

	p, err := snapshot.Load(path)
	require.NoError(t, err)

	exists, err := p.TargetExists(t.Context(), "spdlog::spdlog")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := snapshot.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrSnapshotReadFailed)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("packages: [\n"), domain.FilePerm))

	_, err = snapshot.Load(bad)
	require.ErrorIs(t, err, domain.ErrSnapshotParseFailed)
}

func TestProber_CanceledContext(t *testing.T) {
	p := snapshot.New([]string{"fmt"}, []string{"fmt::fmt"})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := p.PackageDiscoverable(ctx, "fmt")
	require.ErrorIs(t, err, context.Canceled)

	_, err = p.TargetExists(ctx, "fmt::fmt")
	require.ErrorIs(t, err, context.Canceled)
}
