// Package history answers "where did this file go?" for dangling manifest
// references by querying git. Each missing path is classified as
// never-existed, deleted in a known commit, or possibly renamed to a
// similarly named tracked file.
package history

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Status classifies what git history says about a missing path.
type Status string

const (
	StatusNeverExisted Status = "never-existed"
	StatusDeleted      Status = "deleted"
	StatusRenamed      Status = "possibly-renamed"
	StatusUnknown      Status = "unknown"
)

// Finding is the classification of one missing path.
type Finding struct {
	Path           string
	Status         Status
	DeletionCommit string   // hash of the commit that deleted the file
	DeletionTitle  string   // subject line of that commit
	LastRevision   string   // last revision that touched the file
	Candidates     []string // similarly named tracked files, best first
}

// Remediation returns a suggested command to recover or repoint the
// reference, or empty string when there is nothing actionable.
func (f Finding) Remediation() string {
	switch f.Status {
	case StatusDeleted:
		if f.DeletionCommit != "" {
			return fmt.Sprintf("git checkout %s^ -- %s", f.DeletionCommit, f.Path)
		}
		// Removed from the working tree but no deletion commit yet; the
		// last revision that touched the file still has it.
		if f.LastRevision != "" {
			return fmt.Sprintf("git checkout %s -- %s", f.LastRevision, f.Path)
		}
	case StatusRenamed:
		if len(f.Candidates) > 0 {
			return fmt.Sprintf("update the manifest to reference %s", f.Candidates[0])
		}
	}
	return ""
}

// IsGitRepo checks if the given directory is within a git repository.
func IsGitRepo(rootPath string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = rootPath
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// EverExisted reports whether git has any history for path.
func EverExisted(rootPath, path string) (bool, error) {
	cmd := exec.Command("git", "log", "--oneline", "--follow", "--", path)
	cmd.Dir = rootPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return false, fmt.Errorf("git log failed: %w: %s", err, output)
	}
	return strings.TrimSpace(string(output)) != "", nil
}

// DeletionCommit returns the hash and subject of the commit that deleted
// path, or empty strings when no deletion is recorded.
func DeletionCommit(rootPath, path string) (hash, title string, err error) {
	cmd := exec.Command("git", "log", "--diff-filter=D", "-1", "--format=%H%x00%s", "--", path)
	cmd.Dir = rootPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", "", fmt.Errorf("git log --diff-filter=D failed: %w: %s", err, output)
	}
	line := strings.TrimSpace(string(output))
	if line == "" {
		return "", "", nil
	}
	hash, title, _ = strings.Cut(line, "\x00")
	return hash, title, nil
}

// LastRevision returns the last commit that touched path, or empty string
// when the path has no history.
func LastRevision(rootPath, path string) (string, error) {
	cmd := exec.Command("git", "rev-list", "-1", "HEAD", "--", path)
	cmd.Dir = rootPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git rev-list failed: %w: %s", err, output)
	}
	return strings.TrimSpace(string(output)), nil
}

// trackedFiles lists all files git tracks under rootPath.
func trackedFiles(rootPath string) ([]string, error) {
	cmd := exec.Command("git", "ls-files")
	cmd.Dir = rootPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w: %s", err, output)
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// SimilarFiles returns up to n tracked files whose basename is close to
// the missing path's basename, best match first. Candidates further than
// half the basename's length away are not considered similar.
func SimilarFiles(rootPath, path string, n int) ([]string, error) {
	files, err := trackedFiles(rootPath)
	if err != nil {
		return nil, err
	}
	return rankSimilar(files, path, n), nil
}

// rankSimilar is the pure ranking step, separated so it can be tested
// without a git repository.
func rankSimilar(files []string, path string, n int) []string {
	base := strings.ToLower(filepath.Base(path))
	maxDist := len(base) / 2

	type candidate struct {
		file string
		dist int
	}
	var candidates []candidate
	for _, f := range files {
		d := levenshtein(base, strings.ToLower(filepath.Base(f)))
		if d == 0 || d > maxDist {
			// d == 0 means same basename at a different location; that is
			// the strongest rename signal, keep it at the front.
			if d == 0 {
				candidates = append(candidates, candidate{f, 0})
			}
			continue
		}
		candidates = append(candidates, candidate{f, d})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	var result []string
	for _, c := range candidates {
		result = append(result, c.file)
		if len(result) == n {
			break
		}
	}
	return result
}

// Classify combines the git queries into a single Finding for a missing
// path, collecting at most maxCandidates rename candidates. When rootPath
// is not a git repository the status is unknown.
func Classify(rootPath, path string, maxCandidates int) Finding {
	finding := Finding{Path: path, Status: StatusUnknown}
	if !IsGitRepo(rootPath) {
		return finding
	}

	existed, err := EverExisted(rootPath, path)
	if err != nil {
		return finding
	}

	if !existed {
		finding.Status = StatusNeverExisted
		if candidates, err := SimilarFiles(rootPath, path, maxCandidates); err == nil && len(candidates) > 0 {
			finding.Status = StatusRenamed
			finding.Candidates = candidates
		}
		return finding
	}

	finding.Status = StatusDeleted
	if hash, title, err := DeletionCommit(rootPath, path); err == nil {
		finding.DeletionCommit = hash
		finding.DeletionTitle = title
	}
	if rev, err := LastRevision(rootPath, path); err == nil {
		finding.LastRevision = rev
	}
	if candidates, err := SimilarFiles(rootPath, path, maxCandidates); err == nil {
		finding.Candidates = candidates
	}
	return finding
}
