package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swissfort-mfg/entrydesk/internal/config"
	"github.com/swissfort-mfg/entrydesk/internal/master"
)

// project is a loaded config plus the master catalog it points at.
type project struct {
	Path    string
	Config  *config.Config
	Catalog *master.Service
}

// loadProject reads the config named by --config. A missing config file
// falls back to the defaults, and a missing master file to the default
// catalog, so the commands work outside an initialized directory.
func loadProject(cmd *cobra.Command) (*project, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default("")
		fmt.Fprintf(cmd.ErrOrStderr(), "No %s found, using defaults\n", path)
	case err != nil:
		return nil, err
	}

	catalog := master.NewService(master.DefaultCatalog())
	if cfg.MasterFile != "" {
		mpath := cfg.MasterFile
		if !filepath.IsAbs(mpath) {
			mpath = filepath.Join(filepath.Dir(path), mpath)
		}
		loaded, err := master.Load(mpath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("loading master options: %w", err)
		default:
			catalog = loaded
		}
	}

	return &project{Path: path, Config: cfg, Catalog: catalog}, nil
}

// applyEnv loads .env next to the config and in the working directory,
// then applies ENTRYDESK_* overrides.
func (p *project) applyEnv() error {
	files := []string{".env"}
	if dir := filepath.Dir(p.Path); dir != "." {
		files = append([]string{filepath.Join(dir, ".env")}, files...)
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return err
	}
	return p.Config.ApplyEnv(os.LookupEnv)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
