package branchtree

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Source is the subset of the git backend the builder queries.
type Source interface {
	CurrentBranch(ctx context.Context) (string, error)
	UpstreamMap(ctx context.Context) (map[string]string, error)
	CommitCountDifference(ctx context.Context, a, b string) (int, error)
	LatestCommitHash(ctx context.Context, branch string) (string, error)
	LatestCommitTitle(ctx context.Context, branch string) (string, error)
}

// Options controls how upstream names are interpreted.
type Options struct {
	// RemotePrefixes mark remote-tracking upstreams, which count as no upstream.
	RemotePrefixes []string
}

// DefaultOptions treats origin/ upstreams as remote.
func DefaultOptions() Options {
	return Options{RemotePrefixes: []string{"origin/"}}
}

// Build queries src and assembles the forest of local branches. Any failed
// query aborts the build; no partial forest is returned.
func Build(ctx context.Context, src Source, opts Options) (Forest, error) {
	logger := log.FromContext(ctx)

	active, err := src.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading current branch: %w", err)
	}

	upstreams, err := src.UpstreamMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading upstreams: %w", err)
	}

	forest := make(Forest, len(upstreams))
	for branch, upstream := range upstreams {
		forest[branch] = &Node{
			Name:     branch,
			Upstream: normalizeUpstream(upstream, opts.RemotePrefixes),
		}
	}

	names := sortedNames(forest)
	for _, name := range names {
		node := forest[name]
		parent, ok := forest[node.Upstream]
		if node.Upstream == "" || !ok {
			if node.Upstream != "" {
				logger.Debug("upstream is not a local branch, treating as root", "branch", name, "upstream", node.Upstream)
			}
			node.IsRoot = true
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	if node, ok := forest[active]; ok {
		node.IsActive = true
	} else {
		logger.Debug("active branch is not a local branch", "head", active)
	}

	for _, name := range names {
		if err := enrich(ctx, src, forest[name]); err != nil {
			return nil, err
		}
	}

	for _, node := range forest {
		slices.SortFunc(node.Children, func(a, b *Node) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}

	return forest, nil
}

func enrich(ctx context.Context, src Source, node *Node) error {
	if !node.IsRoot {
		ahead, err := src.CommitCountDifference(ctx, node.Upstream, node.Name)
		if err != nil {
			return fmt.Errorf("counting commits of %s ahead of %s: %w", node.Name, node.Upstream, err)
		}
		behind, err := src.CommitCountDifference(ctx, node.Name, node.Upstream)
		if err != nil {
			return fmt.Errorf("counting commits of %s behind %s: %w", node.Name, node.Upstream, err)
		}
		node.Ahead = &ahead
		node.Behind = &behind
	}

	hash, err := src.LatestCommitHash(ctx, node.Name)
	if err != nil {
		return fmt.Errorf("reading tip of %s: %w", node.Name, err)
	}
	title, err := src.LatestCommitTitle(ctx, node.Name)
	if err != nil {
		return fmt.Errorf("reading tip of %s: %w", node.Name, err)
	}
	node.Hash = hash
	node.Title = title
	return nil
}

// normalizeUpstream maps empty and remote-tracking upstreams to "".
func normalizeUpstream(upstream string, remotePrefixes []string) string {
	upstream = strings.TrimSpace(upstream)
	for _, prefix := range remotePrefixes {
		if prefix != "" && strings.HasPrefix(upstream, prefix) {
			return ""
		}
	}
	return upstream
}

func sortedNames(forest Forest) []string {
	names := make([]string, 0, len(forest))
	for name := range forest {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
