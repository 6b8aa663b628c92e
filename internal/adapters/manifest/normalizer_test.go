package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cppdeps/internal/adapters/manifest"
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func names(specs []domain.DependencySpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name.String()
	}
	return out
}

func TestNormalize_Valid(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantNames    []string
		wantFeatures map[string][]string
		wantVersion  map[string]string
	}{
		{
			name:      "empty list",
			input:     `[]`,
			wantNames: []string{},
		},
		{
			name:      "bare names keep manifest order",
			input:     `["spdlog", "fmt", "catch2"]`,
			wantNames: []string{"spdlog", "fmt", "catch2"},
		},
		{
			name:         "objects with features",
			input:        `["fmt", {"name": "boost", "features": ["filesystem", "asio", "filesystem"]}]`,
			wantNames:    []string{"fmt", "boost"},
			wantFeatures: map[string][]string{"boost": {"asio", "filesystem"}, "fmt": nil},
		},
		{
			name: "vcpkg manifest object",
			input: `{
				"name": "demo",
				"version": "0.1.0",
				"dependencies": [
					"fmt",
					{"name": "spdlog", "version>=": "1.12.0#1", "default-features": false},
					{"name": "curl", "features": [{"name": "ssl", "platform": "linux"}], "host": false},
					{"name": "sqlite3", "version>=": "2024-01-31", "$comment": "pinned"}
				]
			}`,
			wantNames:    []string{"fmt", "spdlog", "curl", "sqlite3"},
			wantFeatures: map[string][]string{"curl": {"ssl"}},
			wantVersion:  map[string]string{"spdlog": "1.12.0#1", "sqlite3": "2024-01-31", "fmt": ""},
		},
		{
			name:      "vcpkg manifest with empty dependencies",
			input:     `{"name": "empty", "dependencies": []}`,
			wantNames: []string{},
		},
		{
			name:      "names are case-sensitive",
			input:     `["Fmt", "fmt"]`,
			wantNames: []string{"Fmt", "fmt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			n := manifest.New(mocks.NewMockLogger(ctrl))

			specs, err := n.Normalize([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, names(specs))

			for _, s := range specs {
				if want, ok := tt.wantFeatures[s.Name.String()]; ok {
					assert.Equal(t, want, s.Features, s.Name.String())
				}
				if want, ok := tt.wantVersion[s.Name.String()]; ok {
					assert.Equal(t, want, s.Version, s.Name.String())
				}
			}
		})
	}
}

func TestNormalize_Deduplication(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	n := manifest.New(logger)

	logger.EXPECT().Warn("fmt: duplicate dependency in manifest, merging features").Times(1)

	specs, err := n.Normalize([]byte(`["fmt", {"name": "fmt", "features": ["x"]}]`))
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "fmt", specs[0].Name.String())
	assert.Equal(t, []string{"x"}, specs[0].Features)
}

func TestNormalize_DuplicatesMergeInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	n := manifest.New(logger)

	logger.EXPECT().Warn(gomock.Any()).Times(2)

	specs, err := n.Normalize([]byte(`[
		{"name": "boost", "features": ["b"], "version>=": "1.80.0"},
		"fmt",
		{"name": "boost", "features": ["a", "b"], "version>=": "1.83.0"},
		{"name": "boost", "version>=": "1.81.0"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"boost", "fmt"}, names(specs))
	assert.Equal(t, []string{"a", "b"}, specs[0].Features)
	assert.Equal(t, "1.83.0", specs[0].Version)
}

func TestNormalize_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "malformed json", input: `["fmt",`, wantMsg: "malformed JSON"},
		{name: "top-level string", input: `"fmt"`},
		{name: "number item", input: `["fmt", 42]`, wantMsg: "/1"},
		{name: "empty name", input: `[""]`, wantMsg: "/0"},
		{name: "object without name", input: `[{"features": ["x"]}]`, wantMsg: "/0"},
		{name: "empty object name", input: `[{"name": ""}]`, wantMsg: "/0"},
		{name: "features not a list", input: `[{"name": "fmt", "features": "x"}]`},
		{name: "unknown key", input: `[{"name": "fmt", "optional": true}]`},
		{name: "dependencies not a list", input: `{"dependencies": "fmt"}`},
		{name: "empty object", input: `{}`},
		{name: "unwrapped entry object", input: `{"name": "fmt", "features": ["x"]}`},
		{name: "misspelled dependencies key", input: `{"deps": ["fmt"]}`},
		{name: "vcpkg manifest without dependencies", input: `{"name": "empty"}`},
		{name: "invalid version", input: `[{"name": "fmt", "version>=": "latest"}]`, wantMsg: "invalid version>= constraint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			n := manifest.New(mocks.NewMockLogger(ctrl))

			specs, err := n.Normalize([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, specs)
			require.ErrorIs(t, err, domain.ErrManifestParse)
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := manifest.New(mocks.NewMockLogger(ctrl))

	dir := t.TempDir()
	path := filepath.Join(dir, domain.DefaultManifestName)
	require.NoError(t, os.WriteFile(path, []byte(`{"dependencies": ["fmt", "spdlog"]}`), domain.FilePerm))

	specs, err := n.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "spdlog"}, names(specs))
}

func TestLoadFile_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := manifest.New(mocks.NewMockLogger(ctrl))
	dir := t.TempDir()

	_, err := n.LoadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, domain.ErrManifestRead)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{{`), domain.FilePerm))
	_, err = n.LoadFile(bad)
	require.ErrorIs(t, err, domain.ErrManifestParse)
}
