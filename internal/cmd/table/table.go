// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/agentstation/saveback/pkg/archive"
	"github.com/agentstation/saveback/pkg/constants"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ArchivesToTableData converts the archive catalog to table format.
// Relative ages are computed against now. Wide adds the file
// modification time and the digest.
func ArchivesToTableData(infos []archive.Info, wide bool, now time.Time) Data {
	headers := []string{"#", "Name", "Created", "Comment", "Size"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Modified", "Digest")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		row := []string{
			strconv.Itoa(info.Index),
			info.Name,
			FormatCreated(info.Created, now),
			orDash(info.Comment),
			humanize.Bytes(uint64(max(info.Size, 0))),
		}
		if wide {
			row = append(row,
				info.Modified.Format(constants.TimeFormatHuman),
				orDash(info.Digest.String()),
			)
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// FormatCreated renders a backup timestamp with its age, or "-" when the
// archive name carries none.
func FormatCreated(created *time.Time, now time.Time) string {
	if created == nil {
		return "-"
	}
	return created.Format(constants.TimeFormatHuman) + " (" + humanize.RelTime(*created, now, "ago", "from now") + ")"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
