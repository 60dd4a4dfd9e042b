package configloader

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dirs  []string
		files []string
		start string
		want  string
	}{
		{
			name:  "in start directory",
			files: []string{"/home/dev/site/.razorlint.yml"},
			start: "/home/dev/site",
			want:  "/home/dev/site/.razorlint.yml",
		},
		{
			name:  "found in a parent",
			files: []string{"/home/dev/site/razorlint.yaml"},
			start: "/home/dev/site/Views/Shared",
			want:  "/home/dev/site/razorlint.yaml",
		},
		{
			name:  "preference order within a directory",
			files: []string{"/home/dev/site/.razorlint.json", "/home/dev/site/.razorlint.yaml"},
			start: "/home/dev/site",
			want:  "/home/dev/site/.razorlint.yaml",
		},
		{
			name:  "stops at the repository root",
			dirs:  []string{"/home/dev/site/.git"},
			files: []string{"/home/dev/.razorlint.yml", "/home/dev/site/Views/x.cshtml"},
			start: "/home/dev/site/Views",
		},
		{
			name:  "stops at home",
			files: []string{"/home/.razorlint.yml", "/home/dev/site/x.cshtml"},
			start: "/home/dev/site",
		},
		{
			name:  "directory with a config name is ignored",
			dirs:  []string{"/home/dev/site/.razorlint.yml"},
			start: "/home/dev/site",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			for _, dir := range tt.dirs {
				require.NoError(t, fs.MkdirAll(dir, 0o755))
			}
			for _, file := range tt.files {
				require.NoError(t, afero.WriteFile(fs, file, []byte("jobs: 1\n"), 0o644))
			}

			got, err := FindProjectConfig(context.Background(), fs, tt.start, "/home/dev")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverPaths(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	for _, file := range []string{"/etc/razorlint/config.yaml", "/cfg/user/config.yml", "/work/.razorlint.yml"} {
		require.NoError(t, afero.WriteFile(fs, file, nil, 0o644))
	}

	paths, err := DiscoverPaths(context.Background(), fs, "/work",
		Locations{SystemDir: "/etc/razorlint", UserDir: "/cfg/user", HomeDir: "/work"})
	require.NoError(t, err)
	assert.Equal(t, &ConfigPaths{
		System:  "/etc/razorlint/config.yaml",
		User:    "/cfg/user/config.yml",
		Project: "/work/.razorlint.yml",
	}, paths)
}

func TestDiscoverPathsCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DiscoverPaths(ctx, afero.NewMemMapFs(), "/work", Locations{})
	require.ErrorIs(t, err, context.Canceled)
}
