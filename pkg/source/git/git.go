// Package git materializes remote source trees by shelling out to the
// git binary. The Fetcher interface keeps the pipeline testable without
// invoking real version control.
package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/componentforge/metadex/pkg/errors"
)

// Fetcher checks out a repository at a ref into a local directory.
type Fetcher interface {
	// Fetch clones url into dest and checks out ref. An empty ref
	// leaves the clone on the remote's default branch.
	Fetch(ctx context.Context, url, ref, dest string) error
}

// Client is a Fetcher backed by the git command-line tool.
type Client struct {
	// Binary is the git executable to invoke. Defaults to "git".
	Binary string
}

// NewClient returns a Client invoking the given git binary.
// An empty binary path falls back to "git" on PATH.
func NewClient(binary string) *Client {
	if binary == "" {
		binary = "git"
	}
	return &Client{Binary: binary}
}

// Fetch clones url into dest, then checks out ref. The clone always
// fetches full history because ref may name a commit that shallow
// clones cannot reach. The subprocess inherits ctx, so cancelling the
// run kills an in-flight clone.
func (c *Client) Fetch(ctx context.Context, url, ref, dest string) error {
	cmd := exec.CommandContext(ctx, c.Binary, "clone", "--quiet", url, dest)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrap(errors.ErrCodeCloneFailed, err, "git clone %s: %s", url, strings.TrimSpace(string(output)))
	}

	if ref == "" {
		return nil
	}

	// checkout rather than clone --branch so tags and commit SHAs work
	cmd = exec.CommandContext(ctx, c.Binary, "-C", dest, "-c", "advice.detachedHead=false", "checkout", "--quiet", ref)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrap(errors.ErrCodeCloneFailed, err, "git checkout %s in %s: %s", ref, dest, strings.TrimSpace(string(output)))
	}

	return nil
}

// Validate reports whether the configured git binary is available.
func (c *Client) Validate() error {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return errors.Wrap(errors.ErrCodeCloneFailed, err, "git binary %q not found", c.Binary)
	}
	return nil
}

var _ Fetcher = (*Client)(nil)
