package github

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	gh "github.com/google/go-github/v57/github"

	"github.com/ibhanwork/hiresight/internal/types"
)

// manifestParsers maps dependency manifest filenames to their parser.
var manifestParsers = map[string]func(string) []string{
	"package.json":     parsePackageJSON,
	"requirements.txt": parseRequirementsTxt,
	"go.mod":           parseGoMod,
	"Cargo.toml":       parseCargoToml,
	"Gemfile":          parseGemfile,
}

// cicdMarkers maps repository paths to the CI/CD tool they indicate.
var cicdMarkers = []struct {
	path string
	tool string
}{
	{".github/workflows", "GitHub Actions"},
	{".travis.yml", "Travis CI"},
	{".circleci/config.yml", "CircleCI"},
	{".gitlab-ci.yml", "GitLab CI"},
	{"Jenkinsfile", "Jenkins"},
	{"azure-pipelines.yml", "Azure Pipelines"},
}

// fetchDependencies reads known manifest files from the repository root and
// records the declared dependency names.
func (c *Client) fetchDependencies(ctx context.Context, owner string, repo *types.Repository) error {
	seen := make(map[string]bool)
	for manifest, parse := range manifestParsers {
		content, ok, err := c.fileContent(ctx, owner, repo.Name, manifest)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for _, dep := range parse(content) {
			if !seen[dep] {
				seen[dep] = true
				repo.Dependencies = append(repo.Dependencies, dep)
			}
		}
	}
	sort.Strings(repo.Dependencies)
	return nil
}

// detectCICD probes for the marker files of common CI/CD systems.
func (c *Client) detectCICD(ctx context.Context, owner string, repo *types.Repository) error {
	for _, marker := range cicdMarkers {
		exists, err := c.pathExists(ctx, owner, repo.Name, marker.path)
		if err != nil {
			return err
		}
		if exists {
			repo.CICDTools = append(repo.CICDTools, marker.tool)
		}
	}
	return nil
}

func (c *Client) fileContent(ctx context.Context, owner, repoName, path string) (string, bool, error) {
	var file *gh.RepositoryContent
	var found bool
	err := c.retry.withRetry(ctx, c.log, "repos.contents", func() error {
		var resp *gh.Response
		var err error
		file, _, resp, err = c.gh.Repositories.GetContents(ctx, owner, repoName, path, nil)
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			found = false
			return nil
		}
		if err == nil {
			found = file != nil
		}
		return err
	})
	if err != nil || !found {
		return "", false, err
	}
	content, err := file.GetContent()
	if err != nil {
		return "", false, nil
	}
	return content, true, nil
}

func (c *Client) pathExists(ctx context.Context, owner, repoName, path string) (bool, error) {
	var exists bool
	err := c.retry.withRetry(ctx, c.log, "repos.contents", func() error {
		file, dir, resp, err := c.gh.Repositories.GetContents(ctx, owner, repoName, path, nil)
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			exists = false
			return nil
		}
		if err != nil {
			return err
		}
		exists = file != nil || len(dir) > 0
		return nil
	})
	return exists, err
}

func parsePackageJSON(content string) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}
	var deps []string
	for name := range manifest.Dependencies {
		deps = append(deps, name)
	}
	for name := range manifest.DevDependencies {
		deps = append(deps, name)
	}
	return deps
}

func parseRequirementsTxt(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Cut version specifiers and environment markers.
		if i := strings.IndexAny(line, "=<>!~["); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		if name := strings.TrimSpace(line); name != "" {
			deps = append(deps, strings.ToLower(name))
		}
	}
	return deps
}

func parseGoMod(content string) []string {
	var deps []string
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "require ("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock || strings.HasPrefix(line, "require "):
			line = strings.TrimPrefix(line, "require ")
			fields := strings.Fields(line)
			if len(fields) >= 2 && !strings.HasPrefix(fields[0], "//") {
				deps = append(deps, fields[0])
			}
		}
	}
	return deps
}

func parseCargoToml(content string) []string {
	var deps []string
	inDeps := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			inDeps = strings.HasPrefix(line, "[dependencies") || strings.HasPrefix(line, "[dev-dependencies")
			continue
		}
		if !inDeps || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "="); i > 0 {
			deps = append(deps, strings.TrimSpace(line[:i]))
		}
	}
	return deps
}

func parseGemfile(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		rest := strings.TrimPrefix(line, "gem ")
		rest = strings.Trim(rest, " \t")
		for _, quote := range []string{`"`, `'`} {
			if strings.HasPrefix(rest, quote) {
				if end := strings.Index(rest[1:], quote); end >= 0 {
					deps = append(deps, rest[1:1+end])
				}
				break
			}
		}
	}
	return deps
}
