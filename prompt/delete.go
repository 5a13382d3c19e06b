package prompt

import (
	"fmt"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/internal/pathutil"
)

// ConfirmAndDelete asks whether a previously-downloaded path may be
// deleted. Yes deletes it (directory recursively, file singly) and reports
// deletion. No asks whether the existing version should be reused: yes
// reports reuse, no aborts the run. In no-input mode the path is deleted
// without asking.
func ConfirmAndDelete(a Asker, path string, noInput bool) (deleted bool, err error) {
	okToDelete := true
	if !noInput {
		question := fmt.Sprintf("You've downloaded %s before. Is it okay to delete and re-download it?", path)
		okToDelete, err = a.YesNo(question, true)
		if err != nil {
			return false, err
		}
	}

	if okToDelete {
		if err := pathutil.ForceRemove(path); err != nil {
			return false, errors.Wrapf(err, "delete %s", path)
		}
		return true, nil
	}

	reuse, err := a.YesNo("Do you want to re-use the existing version?", true)
	if err != nil {
		return false, err
	}
	if reuse {
		return false, nil
	}
	return false, errors.Wrap(errors.ErrAborted, "operator declined delete and reuse")
}
