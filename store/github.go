package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"

	"agenda-backend/apperrors"
	"agenda-backend/models"
)

// githubFiles reads and writes whole files through the GitHub contents API.
// Every write is a commit; updates carry the blob SHA of the previous
// version, so a write that loses a race fails instead of clobbering.
type githubFiles struct {
	client *github.Client
	owner  string
	repo   string
}

func newGitHubFiles(token, repo string) (*githubFiles, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("github repo must be owner/name, got %q", repo)
	}
	return &githubFiles{
		client: github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		repo:   name,
	}, nil
}

func (g *githubFiles) read(ctx context.Context, path string) ([]byte, error) {
	file, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, path, nil)
	if err != nil {
		if isGitHubNotFound(err) {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

func (g *githubFiles) write(ctx context.Context, path string, data []byte, message string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: data,
	}

	file, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, path, nil)
	switch {
	case err == nil && file != nil:
		opts.SHA = file.SHA
		_, _, err = g.client.Repositories.UpdateFile(ctx, g.owner, g.repo, path, opts)
	case isGitHubNotFound(err):
		_, _, err = g.client.Repositories.CreateFile(ctx, g.owner, g.repo, path, opts)
	}
	return err
}

func isGitHubNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// GitHubCatalogStore keeps the catalog CSV in a version-controlled
// repository file.
type GitHubCatalogStore struct {
	files *githubFiles
	path  string
}

func NewGitHubCatalogStore(token, repo, path string) (*GitHubCatalogStore, error) {
	files, err := newGitHubFiles(token, repo)
	if err != nil {
		return nil, err
	}
	return &GitHubCatalogStore{files: files, path: path}, nil
}

func (s *GitHubCatalogStore) ReadAll(ctx context.Context) (models.Catalog, error) {
	data, err := s.files.read(ctx, s.path)
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreNotFound) {
			return models.Catalog{}, err
		}
		return models.Catalog{}, &apperrors.StoreError{Op: "read", Err: err}
	}

	catalog, err := decodeCatalog(data)
	if err != nil {
		return models.Catalog{}, &apperrors.StoreError{Op: "read", Err: err}
	}
	return catalog, nil
}

func (s *GitHubCatalogStore) WriteAll(ctx context.Context, catalog models.Catalog) error {
	data, err := encodeCatalog(catalog)
	if err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	if err := s.files.write(ctx, s.path, data, "Update service catalog"); err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	return nil
}

// GitHubLogStore appends confirmed appointments to a repository CSV file.
type GitHubLogStore struct {
	files *githubFiles
	path  string
}

func NewGitHubLogStore(token, repo, path string) (*GitHubLogStore, error) {
	files, err := newGitHubFiles(token, repo)
	if err != nil {
		return nil, err
	}
	return &GitHubLogStore{files: files, path: path}, nil
}

func (s *GitHubLogStore) Append(ctx context.Context, entry models.AppointmentLogEntry) error {
	existing, err := s.files.read(ctx, s.path)
	if err != nil && !errors.Is(err, apperrors.ErrStoreNotFound) {
		return &apperrors.StoreError{Op: "read", Err: err}
	}

	data, err := encodeLog(existing, entry)
	if err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}

	msg := fmt.Sprintf("Log appointment: %s", entry.ClientName)
	if err := s.files.write(ctx, s.path, data, msg); err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	return nil
}
