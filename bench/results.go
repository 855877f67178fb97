package bench

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Summary is the JSON document written for one benchmark run
type Summary struct {
	Timestamp string    `json:"timestamp"`
	CommitID  string    `json:"commit_id"`
	Branch    string    `json:"branch"`
	GoVersion string    `json:"go_version"`
	Seed      uint64    `json:"seed"`
	Hash      string    `json:"hash"`
	Results   []Metrics `json:"results"`
}

// NewSummary stamps results with the time, the Go version and the git state
// of the repository containing dir.
func NewSummary(dir string, seed uint64, hash string, results []Metrics) Summary {
	commitID, branch := gitInfo(dir)
	return Summary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Seed:      seed,
		Hash:      hash,
		Results:   results,
	}
}

// gitInfo reads HEAD from the first .git directory found walking up from dir
func gitInfo(dir string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	gitDir := ""
	for d := dir; ; d = filepath.Dir(d) {
		if fi, err := os.Stat(filepath.Join(d, ".git")); err == nil && fi.IsDir() {
			gitDir = filepath.Join(d, ".git")
			break
		}
		if filepath.Dir(d) == d {
			return
		}
	}

	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return
	}
	content := strings.TrimSpace(string(head))

	// For branches it looks like "ref: refs/heads/main"
	if !strings.HasPrefix(content, "ref: ") {
		if len(content) >= 8 {
			commitID = content[:8]
		}
		return
	}
	ref := strings.TrimPrefix(content, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")

	if data, err := os.ReadFile(filepath.Join(gitDir, ref)); err == nil {
		commitID = strings.TrimSpace(string(data))
		if len(commitID) >= 8 {
			commitID = commitID[:8]
		}
	}
	return
}

// Save writes s as indented JSON to path, creating parent directories
func (s Summary) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling JSON")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "error writing file")
	}
	return nil
}

// Load reads a Summary written by Save
func Load(path string) (Summary, error) {
	var s Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "error reading %s", path)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "error parsing %s", path)
	}
	return s, nil
}
