package constants_test

import (
	"fmt"
	"time"

	"github.com/agentstation/saveback/pkg/constants"
)

// Example demonstrates the permissions used for restored files and directories
func Example() {
	fmt.Printf("dirs: %o\n", constants.DirPermissions)
	fmt.Printf("files: %o\n", constants.FilePermissions)
	// Output:
	// dirs: 755
	// files: 644
}

// Example_archiveName demonstrates how an archive name is assembled
func Example_archiveName() {
	ts := time.Date(2024, 3, 9, 7, 5, 42, 0, time.UTC)
	name := constants.ArchivePrefix + constants.ArchiveSeparator +
		ts.Format(constants.TimeFormatArchive) + constants.ArchiveExtension
	fmt.Println(name)
	// Output: remote_2024-03-09-07-05.zip
}
