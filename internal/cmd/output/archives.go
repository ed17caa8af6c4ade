package output

import (
	"io"
	"time"

	"github.com/agentstation/saveback/internal/cmd/table"
	"github.com/agentstation/saveback/pkg/archive"
)

// FormatArchives writes the archive catalog in the requested format.
// Table formats render a summary, structured formats emit the records.
func FormatArchives(w io.Writer, infos []archive.Info, format Format, now time.Time) error {
	formatter := NewFormatter(format)

	var data any
	if format.IsTable() {
		data = table.ArchivesToTableData(infos, format == FormatWide, now)
	} else {
		data = infos
	}

	return formatter.Format(w, data)
}
