package state

import (
	"time"

	"stylekit/theme"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Themes: theme.Builtin(),
	}
}
