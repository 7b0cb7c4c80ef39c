package collector

import (
	"context"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/info"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Parser decodes one file into findings
type Parser func(location string, data []byte, findings *dependency.Findings) error

// Selector decides which directories are walked and which files are parsed
type Selector interface {
	// Descend returns false for directories that must not be walked
	Descend(name, relative string) bool
	// Select returns parser for a file, or nil to skip it; parent is relative to the walk root
	Select(name, parent string) Parser
}

// Candidate represents a file selected for parsing
type Candidate struct {
	Location string
	Parse    Parser
}

// Collect walks root with selector, then parses selected files with at most config.Jobs parsers,
// files failing to read or parse are logged and skipped
func Collect(ctx context.Context, fs afs.Service, config *info.Config, root string, selector Selector) (*dependency.Findings, error) {
	candidates, err := Walk(ctx, fs, config, root, selector)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, fs, config, candidates)
}

// Walk returns files selected under root in walk order, excluded directories are never entered
func Walk(ctx context.Context, fs afs.Service, config *info.Config, root string, selector Selector) ([]*Candidate, error) {
	exclusion, err := config.Matcher()
	if err != nil {
		return nil, err
	}
	var mux sync.Mutex
	var candidates []*Candidate
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		relative := path.Join(parent, info.Name())
		if info.IsDir() {
			if exclusion.Excluded(info.Name(), relative) {
				return false, nil
			}
			return selector.Descend(info.Name(), relative), nil
		}
		parse := selector.Select(info.Name(), parent)
		if parse == nil {
			return true, nil
		}
		mux.Lock()
		candidates = append(candidates, &Candidate{Location: LocalPath(url.Join(baseURL, relative)), Parse: parse})
		mux.Unlock()
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return nil, xerrors.Errorf("failed to walk %v: %w", root, err)
	}
	return candidates, nil
}

// Parse downloads and parses candidates concurrently, merged findings keep candidate order
func Parse(ctx context.Context, fs afs.Service, config *info.Config, candidates []*Candidate) (*dependency.Findings, error) {
	results := make([]*dependency.Findings, len(candidates))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(config.Jobs)
	for idx, item := range candidates {
		group.Go(func() error {
			data, err := fs.DownloadWithURL(gctx, item.Location)
			if err != nil {
				config.Logger.Warn("failed to read file", "file", item.Location, "error", err)
				return nil
			}
			findings := &dependency.Findings{}
			if err := item.Parse(item.Location, data, findings); err != nil {
				config.Logger.Warn("failed to parse file", "file", item.Location, "error", err)
				return nil
			}
			results[idx] = findings
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	ret := &dependency.Findings{}
	ret.Merge(results...)
	return ret, nil
}

// HasSegment returns true if slash separated location contains segment
func HasSegment(location, segment string) bool {
	for _, item := range strings.Split(location, "/") {
		if item == segment {
			return true
		}
	}
	return false
}

// LocalPath converts file URLs to file system paths
func LocalPath(URL string) string {
	if url.Scheme(URL, file.Scheme) == file.Scheme {
		return url.Path(URL)
	}
	return URL
}

// SortedKeys returns map keys in lexical order
func SortedKeys[T any](m map[string]T) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
