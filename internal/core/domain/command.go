package domain

// Command is an external process a target runs as its action.
type Command struct {
	// Args holds the program followed by its arguments, with tokens already expanded.
	Args []string
	// WorkingDir is the directory the process runs in.
	WorkingDir string
	// Environment holds extra variables layered over the inherited environment.
	Environment map[string]string
}
