package errors_test

import (
	"fmt"
	"io/fs"

	"github.com/agentstation/saveback/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := errors.NewInvalidSelectionError("7", 3)

	if errors.IsInvalidSelection(err) {
		fmt.Println(err)
	}

	// Output: invalid selection "7": expected a number between 1 and 3
}

// Example_filesystemError shows how I/O failures are wrapped.
func Example_filesystemError() {
	err := errors.WrapFS("list", "/saves", fs.ErrPermission)

	fmt.Println(errors.IsFilesystem(err))
	fmt.Println(err)

	// Output:
	// true
	// filesystem error during list of /saves: permission denied
}
