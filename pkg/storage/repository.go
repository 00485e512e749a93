// Package storage persists workspaces between sessions.
//
// A workspace is stored as one JSON document carrying the collection store
// and the directory tree. The file implementation writes atomically, a
// crash never leaves a half-written workspace behind.
package storage

import (
	"github.com/orienthq/go-orient/pkg/orient"
)

// Repository defines the persistence operations for workspaces.
type Repository interface {
	SaveWorkspace(name string, ws *orient.Workspace) error
	LoadWorkspace(name string) (*orient.Workspace, error)
	ListWorkspaces() ([]string, error)
	DeleteWorkspace(name string) error
}
