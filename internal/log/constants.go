package log

// Structured logging keys.
const (
	Args     = "args"
	Cmd      = "cmd"
	Dir      = "dir"
	Dirs     = "dirs"
	Dst      = "dst"
	Duration = "duration"
	Error    = "error"
	ExitCode = "exit_code"
	Files    = "files"
	Path     = "path"
	RunID    = "run_id"
	Src      = "src"
	Step     = "step"
)
