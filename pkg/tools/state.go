package tools

import (
	"os"

	"github.com/google/uuid"

	"github.com/skillet-ai/skillet/pkg/utils"
)

// BasicState is the default session state: a generated session ID and a
// working root that file-path arguments resolve against.
type BasicState struct {
	sessionID   string
	workingRoot string
}

// StateOption configures a BasicState.
type StateOption func(*BasicState)

// WithWorkingRoot sets the directory relative paths resolve against.
func WithWorkingRoot(dir string) StateOption {
	return func(s *BasicState) {
		s.workingRoot = dir
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) StateOption {
	return func(s *BasicState) {
		s.sessionID = id
	}
}

// NewBasicState creates session state rooted at the current directory
// unless overridden.
func NewBasicState(opts ...StateOption) *BasicState {
	s := &BasicState{
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workingRoot == "" {
		if wd, err := os.Getwd(); err == nil {
			s.workingRoot = wd
		} else {
			s.workingRoot = "."
		}
	}
	return s
}

// SessionID identifies this agent session.
func (s *BasicState) SessionID() string {
	return s.sessionID
}

// WorkingRoot is the base directory for relative tool paths.
func (s *BasicState) WorkingRoot() string {
	return s.workingRoot
}

// ResolvePath resolves a tool-supplied path against the working root.
func (s *BasicState) ResolvePath(path string) string {
	return utils.ResolvePath(s.workingRoot, path)
}
