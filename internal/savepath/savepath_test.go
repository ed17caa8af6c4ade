package savepath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/saveback/pkg/constants"
	"github.com/agentstation/saveback/pkg/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
		wantErr  string
	}{
		{
			name:     "explicit save dir wins",
			settings: Settings{SaveDir: "/games/saves/remote/", UserID: "42"},
			want:     filepath.Clean("/games/saves/remote"),
		},
		{
			name:     "constructed from steam ids",
			settings: Settings{UserdataRoot: "/steam/userdata", UserID: "42", Folder: "1234"},
			want:     filepath.Join("/steam/userdata", "42", "1234", "remote"),
		},
		{
			name:     "custom subdir",
			settings: Settings{UserdataRoot: "/steam/userdata", UserID: "42", Folder: "1234", Subdir: "saves"},
			want:     filepath.Join("/steam/userdata", "42", "1234", "saves"),
		},
		{
			name:     "default userdata root",
			settings: Settings{UserID: " 42 ", Folder: "1234"},
			want:     filepath.Join(constants.DefaultSteamUserdataRoot, "42", "1234", constants.DefaultSaveSubdir),
		},
		{
			name:     "missing user id",
			settings: Settings{Folder: "1234"},
			wantErr:  "set SAVE_DIR or STEAM_USERID",
		},
		{
			name:     "nothing set",
			settings: Settings{},
			wantErr:  "set SAVE_DIR or STEAM_USERID and SAVE_DATA_FOLDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.settings)
			if tt.wantErr != "" {
				require.Error(t, err)
				var cfgErr *errors.ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
