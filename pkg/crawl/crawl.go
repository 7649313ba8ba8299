// Package crawl walks a remote vault listing by listing and accumulates
// every folder the entries imply, ancestors included.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/riteshshukladev/obsidian-clipper-repo/internal/logging"
	"github.com/riteshshukladev/obsidian-clipper-repo/internal/metrics"
	"github.com/riteshshukladev/obsidian-clipper-repo/pkg/obsidian"
	"github.com/riteshshukladev/obsidian-clipper-repo/pkg/vaultpath"
)

// MaxDepth bounds recursion below the vault root. Cyclic or pathologically
// nested listings stop here.
const MaxDepth = 15

// Lister is the single listing primitive the crawler needs.
type Lister interface {
	ListDir(ctx context.Context, dir string) ([]string, error)
}

// Options control one discovery run.
type Options struct {
	Enabled bool
	APIKey  string
}

// crawler carries the per-run accumulator state: the folder set and the
// visited-path ledger. Both live for exactly one Discover call.
type crawler struct {
	lister  Lister
	folders *vaultpath.FolderSet
	visited map[string]struct{}
}

// Discover fetches the root listing and walks every directory it reaches,
// returning the full deduplicated folder set sorted ascending by path.
//
// Traversal is strictly sequential with one request in flight at a time;
// the shared folder set and visited ledger are unsynchronized and rely on
// that ordering. A root listing failure aborts with an error. A malformed
// root payload and a disabled or keyless configuration both yield an empty
// result. Failures below the root drop only the affected subtree.
func Discover(ctx context.Context, opts Options, lister Lister) ([]vaultpath.Folder, error) {
	if !opts.Enabled || opts.APIKey == "" {
		logging.L().Debug("vault discovery disabled or unconfigured, skipping")
		return []vaultpath.Folder{}, nil
	}

	start := time.Now()
	c := &crawler{
		lister:  lister,
		folders: vaultpath.NewFolderSet(),
		visited: map[string]struct{}{"": {}},
	}

	entries, err := lister.ListDir(ctx, "")
	if err != nil {
		if errors.Is(err, obsidian.ErrMalformed) {
			logging.L().Warn("root listing payload malformed, returning empty folder set", zap.Error(err))
			return []vaultpath.Folder{}, nil
		}
		return nil, fmt.Errorf("list vault root: %w", err)
	}

	for _, raw := range entries {
		c.folders.Add(vaultpath.FromEntry("", raw))
		if !vaultpath.IsDir(raw) {
			continue
		}
		if child := vaultpath.Clean(raw); child != "" {
			c.descend(ctx, child, 1)
		}
	}

	folders := c.folders.Sorted()
	metrics.DiscoveryCompleted(len(folders), time.Since(start).Seconds())
	logging.L().Info("vault discovery finished",
		zap.Int("folders", len(folders)),
		zap.Duration("elapsed", time.Since(start)))
	return folders, nil
}

// descend lists dir, merges its entries into the folder set, and recurses
// into unvisited subdirectories. The ledger is written before the fetch so
// re-entrant references can never trigger a second request for dir.
func (c *crawler) descend(ctx context.Context, dir string, depth int) {
	if depth > MaxDepth {
		logging.L().Warn("depth ceiling reached, pruning",
			zap.String("dir", dir), zap.Int("depth", depth))
		return
	}
	if _, ok := c.visited[dir]; ok {
		return
	}
	c.visited[dir] = struct{}{}

	entries, err := c.lister.ListDir(ctx, dir)
	if err != nil {
		metrics.SubtreeSkipped()
		logging.L().Warn("listing failed, skipping subtree",
			zap.String("dir", dir), zap.Error(err))
		return
	}
	logging.L().Debug("listed directory",
		zap.String("dir", dir), zap.Int("entries", len(entries)))

	for _, raw := range entries {
		c.folders.Add(vaultpath.FromEntry(dir, raw))
		if !vaultpath.IsDir(raw) {
			continue
		}
		child := vaultpath.Resolve(dir, raw)
		if child == "" {
			continue
		}
		if _, ok := c.visited[child]; ok {
			continue
		}
		c.descend(ctx, child, depth+1)
	}
}
