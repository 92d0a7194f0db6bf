package build

import (
	"fmt"

	"github.com/yaklabco/autoxbuild/pkg/st"
)

// StepError reports the step that stopped a run. The collaborator's error is
// kept unmodified and is reachable through errors.Is/As.
type StepError struct {
	// Step is the failing step's name.
	Step string
	// Index is the zero-based position of the step in the run.
	Index int
	// Err is the error the step returned.
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitStatus propagates the exit status carried by the step's error, so a
// build command that exits 2 makes autoxbuild exit 2.
func (e *StepError) ExitStatus() int {
	return st.ExitStatus(e.Err)
}
