package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/orienthq/go-orient/pkg/orient"
)

const (
	workspacesDir  = "workspaces"
	filePermission = 0o644
	dirPermission  = 0o755
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONRepository implements Repository on top of a directory of JSON files,
// one file per workspace.
type JSONRepository struct {
	basePath string
	logger   *slog.Logger
}

func NewJSONRepository(basePath string, logger *slog.Logger) *JSONRepository {
	return &JSONRepository{basePath: basePath, logger: logger}
}

func (r *JSONRepository) SaveWorkspace(name string, ws *orient.Workspace) error {
	if err := validateWorkspaceName(name); err != nil {
		return fmt.Errorf("invalid workspace name: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(r.basePath, workspacesDir), dirPermission); err != nil {
		return fmt.Errorf("create workspaces directory: %w", err)
	}

	path := r.workspacePath(name)
	if err := r.verifyPathInWorkspacesDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	if err := atomicWriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("write workspace file: %w", err)
	}

	r.logger.Debug("saved workspace",
		slog.String("name", name),
		slog.String("path", path))
	return nil
}

func (r *JSONRepository) LoadWorkspace(name string) (*orient.Workspace, error) {
	if err := validateWorkspaceName(name); err != nil {
		return nil, fmt.Errorf("invalid workspace name: %w", err)
	}
	path := r.workspacePath(name)
	if err := r.verifyPathInWorkspacesDir(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WorkspaceNotFoundError{Name: name}
		}
		return nil, fmt.Errorf("read workspace file: %w", err)
	}

	ws := orient.NewWorkspace()
	if err := json.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("unmarshal workspace: %w", err)
	}

	r.logger.Debug("loaded workspace",
		slog.String("name", name),
		slog.String("path", path))
	return ws, nil
}

func (r *JSONRepository) ListWorkspaces() ([]string, error) {
	dir := filepath.Join(r.basePath, workspacesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		// nothing saved yet
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read workspaces directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, found := strings.CutSuffix(entry.Name(), ".json"); found {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	r.logger.Debug("listed workspaces", slog.Int("count", len(names)))
	return names, nil
}

func (r *JSONRepository) DeleteWorkspace(name string) error {
	if err := validateWorkspaceName(name); err != nil {
		return fmt.Errorf("invalid workspace name: %w", err)
	}
	path := r.workspacePath(name)
	if err := r.verifyPathInWorkspacesDir(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return WorkspaceNotFoundError{Name: name}
		}
		return fmt.Errorf("delete workspace file: %w", err)
	}

	r.logger.Debug("deleted workspace",
		slog.String("name", name),
		slog.String("path", path))
	return nil
}

type WorkspaceNotFoundError struct {
	Name string
}

func (e WorkspaceNotFoundError) Error() string {
	return fmt.Sprintf(`workspace "%s" not found`, e.Name)
}

// atomicWriteFile writes to a temp file in the target directory, syncs it
// and renames it over the target path, so readers never see partial content.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// validateWorkspaceName checks that the name is safe to use as a file name.
func validateWorkspaceName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf(`name must not contain ".."`)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name must not contain path separators")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("name must not contain null bytes")
	}
	return nil
}

func (r *JSONRepository) workspacePath(name string) string {
	return filepath.Join(r.basePath, workspacesDir, name+".json")
}

// verifyPathInWorkspacesDir complements validateWorkspaceName, the resolved
// path must stay inside the workspaces directory.
func (r *JSONRepository) verifyPathInWorkspacesDir(path string) error {
	base := filepath.Join(r.basePath, workspacesDir)
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return fmt.Errorf("path outside workspaces directory: %w", err)
	}
	if strings.HasPrefix(rel, "..") {
		return fmt.Errorf(`path "%s" escapes workspaces directory`, path)
	}
	return nil
}
