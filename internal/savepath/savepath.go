// Package savepath builds the save directory location from Steam settings.
package savepath

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/saveback/pkg/constants"
	"github.com/agentstation/saveback/pkg/errors"
)

// Settings are the inputs that locate a game's save directory.
//
// When SaveDir is set it is used as is. Otherwise the path is
// <UserdataRoot>/<UserID>/<Folder>/<Subdir>.
type Settings struct {
	SaveDir      string
	UserdataRoot string
	UserID       string
	Folder       string
	Subdir       string
}

// Resolve returns the cleaned save directory path for s.
func Resolve(s Settings) (string, error) {
	if dir := strings.TrimSpace(s.SaveDir); dir != "" {
		return filepath.Clean(dir), nil
	}

	var missing []string
	if strings.TrimSpace(s.UserID) == "" {
		missing = append(missing, "STEAM_USERID")
	}
	if strings.TrimSpace(s.Folder) == "" {
		missing = append(missing, "SAVE_DATA_FOLDER")
	}
	if len(missing) > 0 {
		return "", errors.NewConfigError("savepath",
			"set SAVE_DIR or "+strings.Join(missing, " and "), nil)
	}

	root := s.UserdataRoot
	if root == "" {
		root = constants.DefaultSteamUserdataRoot
	}
	subdir := s.Subdir
	if subdir == "" {
		subdir = constants.DefaultSaveSubdir
	}

	return filepath.Join(root, strings.TrimSpace(s.UserID), strings.TrimSpace(s.Folder), subdir), nil
}
