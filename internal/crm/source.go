package crm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Category record files inside the CRM data directory.
const (
	FileCapitalPartners = "capital_partners.json"
	FileTeams           = "capital_partner_teams.json"
	FileSponsors        = "sponsors.json"
	FileAgents          = "agents.json"
	FileCounsel         = "counsel.json"
)

// Source provides a snapshot of raw CRM records for matching.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// FileSource reads category records from flat JSON files in a directory,
// matching the layout the web application stores them in. Each Load returns
// a fresh snapshot.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Load reads all five category files concurrently. A missing file is an
// empty category; a file that exists but fails to parse is an error.
func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	var ds Dataset

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return readCategoryFile(filepath.Join(s.dir, FileCapitalPartners), &ds.CapitalPartners) })
	g.Go(func() error { return readCategoryFile(filepath.Join(s.dir, FileTeams), &ds.Teams) })
	g.Go(func() error { return readCategoryFile(filepath.Join(s.dir, FileSponsors), &ds.Sponsors) })
	g.Go(func() error { return readCategoryFile(filepath.Join(s.dir, FileAgents), &ds.Agents) })
	g.Go(func() error { return readCategoryFile(filepath.Join(s.dir, FileCounsel), &ds.Counsel) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Debug("crm: loaded dataset",
		zap.String("dir", s.dir),
		zap.Int("capital_partners", len(ds.CapitalPartners)),
		zap.Int("teams", len(ds.Teams)),
		zap.Int("sponsors", len(ds.Sponsors)),
		zap.Int("agents", len(ds.Agents)),
		zap.Int("counsel", len(ds.Counsel)),
	)
	return &ds, nil
}

func readCategoryFile[T any](path string, out *[]T) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		zap.L().Warn("crm: category file missing, treating as empty", zap.String("path", path))
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "crm: read %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "crm: parse %s", path)
	}
	return nil
}
