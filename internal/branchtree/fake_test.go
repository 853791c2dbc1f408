package branchtree

import (
	"context"
	"errors"
	"fmt"
)

var errFakeQuery = errors.New("scripted failure")

// fakeSource answers builder queries from maps. Unknown counts are zero and
// unknown hashes and titles are derived from the branch name.
type fakeSource struct {
	current   string
	upstreams map[string]string
	counts    map[string]int
	hashes    map[string]string
	titles    map[string]string

	// failOn names a method that returns errFakeQuery.
	failOn string
	calls  []string
}

func (f *fakeSource) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && f.failOn == call[:min(len(call), len(f.failOn))] {
		return errFakeQuery
	}
	return nil
}

func (f *fakeSource) CurrentBranch(ctx context.Context) (string, error) {
	if err := f.record("CurrentBranch"); err != nil {
		return "", err
	}
	return f.current, nil
}

func (f *fakeSource) UpstreamMap(ctx context.Context) (map[string]string, error) {
	if err := f.record("UpstreamMap"); err != nil {
		return nil, err
	}
	return f.upstreams, nil
}

func (f *fakeSource) CommitCountDifference(ctx context.Context, a, b string) (int, error) {
	if err := f.record(fmt.Sprintf("CommitCountDifference %s..%s", a, b)); err != nil {
		return 0, err
	}
	return f.counts[a+".."+b], nil
}

func (f *fakeSource) LatestCommitHash(ctx context.Context, branch string) (string, error) {
	if err := f.record("LatestCommitHash " + branch); err != nil {
		return "", err
	}
	if hash, ok := f.hashes[branch]; ok {
		return hash, nil
	}
	return "h" + branch, nil
}

func (f *fakeSource) LatestCommitTitle(ctx context.Context, branch string) (string, error) {
	if err := f.record("LatestCommitTitle " + branch); err != nil {
		return "", err
	}
	if title, ok := f.titles[branch]; ok {
		return title, nil
	}
	return "tip of " + branch, nil
}

// stackSource is the five-branch repository used throughout the tests:
//
//	master
//	├─ test_branch
//	│   ├─ fun_branch
//	│   └─ test_two
//	└─ test_zoo
func stackSource() *fakeSource {
	return &fakeSource{
		current: "master",
		upstreams: map[string]string{
			"master":      "",
			"test_branch": "master",
			"fun_branch":  "test_branch",
			"test_two":    "test_branch",
			"test_zoo":    "master",
		},
		counts: map[string]int{
			"master..test_branch":     2,
			"test_branch..master":     1,
			"test_branch..fun_branch": 1,
			"test_branch..test_two":   0,
			"test_two..test_branch":   3,
		},
		hashes: map[string]string{
			"master":      "aaaaaaa",
			"test_branch": "bbbbbbb",
			"fun_branch":  "ccccccc",
			"test_two":    "ddddddd",
			"test_zoo":    "eeeeeee",
		},
		titles: map[string]string{
			"master":      "Initial commit",
			"test_branch": "Add test branch",
			"fun_branch":  "Fun",
			"test_two":    "Second test",
			"test_zoo":    "Zoo animals",
		},
	}
}
