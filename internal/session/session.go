package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/explorer"
	"github.com/scan-io-git/vulx/internal/git"
	"github.com/scan-io-git/vulx/internal/results"
)

// Session wires the result loader, snapshot store, reloader and tree for one workspace.
type Session struct {
	Workspace string
	Metadata  *git.RepositoryMetadata
	Loader    *results.Loader
	Store     *explorer.Store
	Reloader  *explorer.Reloader
	Tree      *explorer.Tree
	logger    hclog.Logger
}

// New builds a Session for the workspace enclosing dir. Nothing is loaded yet.
func New(cfg *config.Config, logger hclog.Logger, dir string) (*Session, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	root, err := git.FindWorkspaceRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}

	md, err := git.CollectRepositoryMetadata(root)
	if err != nil && !errors.Is(err, git.ErrNotRepository) {
		logger.Debug("failed to collect repository metadata", "error", err)
	}

	loader := results.NewLoader(config.GetResultsFolder(cfg), logger.Named("loader"))
	store := explorer.NewStore()

	s := &Session{
		Workspace: root,
		Metadata:  md,
		Loader:    loader,
		Store:     store,
		Reloader:  explorer.NewReloader(loader, store, logger.Named("reloader")),
		Tree:      explorer.NewTree(store, root),
		logger:    logger,
	}
	s.logger.Debug("session created", "workspace", root, "results", loader.Folder())
	return s, nil
}

// Load fills the store from the results folder and waits for it to finish.
func (s *Session) Load(ctx context.Context) error {
	if err := s.Reloader.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	return nil
}
