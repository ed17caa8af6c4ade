package archive

import (
	"strings"
	"time"

	"github.com/agentstation/saveback/pkg/constants"
)

// Name holds the parts encoded in a conventional archive file name.
type Name struct {
	Timestamp time.Time
	Comment   string
}

// FormatName builds remote_<YYYY-MM-DD-HH-mm>[_<comment>].zip.
// The comment is appended verbatim.
func FormatName(t time.Time, comment string) string {
	var b strings.Builder
	b.WriteString(constants.ArchivePrefix)
	b.WriteString(constants.ArchiveSeparator)
	b.WriteString(t.Format(constants.TimeFormatArchive))
	if comment != "" {
		b.WriteString(constants.ArchiveSeparator)
		b.WriteString(comment)
	}
	b.WriteString(constants.ArchiveExtension)
	return b.String()
}

// ParseName recovers the timestamp and comment from a name produced by
// FormatName. The timestamp is interpreted in loc; ok is false for names
// that do not follow the convention.
func ParseName(name string, loc *time.Location) (Name, bool) {
	rest, found := strings.CutSuffix(name, constants.ArchiveExtension)
	if !found {
		return Name{}, false
	}
	rest, found = strings.CutPrefix(rest, constants.ArchivePrefix+constants.ArchiveSeparator)
	if !found || len(rest) < len(constants.TimeFormatArchive) {
		return Name{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	stamp, tail := rest[:len(constants.TimeFormatArchive)], rest[len(constants.TimeFormatArchive):]
	ts, err := time.ParseInLocation(constants.TimeFormatArchive, stamp, loc)
	if err != nil {
		return Name{}, false
	}

	switch {
	case tail == "":
		return Name{Timestamp: ts}, true
	case strings.HasPrefix(tail, constants.ArchiveSeparator) && len(tail) > len(constants.ArchiveSeparator):
		return Name{Timestamp: ts, Comment: tail[len(constants.ArchiveSeparator):]}, true
	default:
		return Name{}, false
	}
}

// isArchiveName reports whether a directory entry name has the archive extension.
func isArchiveName(name string) bool {
	return strings.HasSuffix(name, constants.ArchiveExtension)
}
