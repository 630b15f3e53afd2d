package overrides

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
	"github.com/zeusync/gmruntime/pkg/concurrent"
	"github.com/zeusync/gmruntime/pkg/sequence"
)

var ErrInvalidOverride = errors.New("invalid override file")

// DefaultWorkers bounds concurrent file reads.
const DefaultWorkers = 8

// Directory discovers replacement code units stored as one JSON file per
// unit in a flat directory.
type Directory struct {
	path    string
	workers int
	logger  log.Log
}

func NewDirectory(path string, logger log.Log) *Directory {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Directory{
		path:    path,
		workers: DefaultWorkers,
		logger:  logger.With(log.String("component", "overrides")),
	}
}

func (d *Directory) Path() string {
	return d.path
}

// Overrides returns the replacement units keyed by code name. A missing
// directory yields none. When two files name the same unit the first file
// in name order wins.
func (d *Directory) Overrides(ctx context.Context) (map[string]*assets.Code, error) {
	files, err := d.list()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return map[string]*assets.Code{}, nil
	}

	units, err := concurrent.ParallelMap(ctx, sequence.From(files), d.workers, func(_ context.Context, file string) (*assets.Code, error) {
		return readUnit(file)
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]*assets.Code, len(units))
	for i, unit := range units {
		if _, ok := out[unit.Name]; ok {
			d.logger.Warn("duplicate override ignored",
				log.String("name", unit.Name),
				log.String("file", filepath.Base(files[i])),
			)
			continue
		}
		out[unit.Name] = unit
	}

	d.logger.Info("overrides discovered",
		log.String("path", d.path),
		log.Int("count", len(out)),
	)
	return out, nil
}

func (d *Directory) list() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Debug("no override directory", log.String("path", d.path))
			return nil, nil
		}
		return nil, fmt.Errorf("read override directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(d.path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func readUnit(file string) (*assets.Code, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read override %s: %w", filepath.Base(file), err)
	}

	var unit assets.Code
	if err = json.Unmarshal(data, &unit); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOverride, filepath.Base(file), err)
	}
	if unit.Name == "" {
		return nil, fmt.Errorf("%w: %s: missing name", ErrInvalidOverride, filepath.Base(file))
	}
	return &unit, nil
}
