package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FileFetcher reads locators from the local filesystem. Both plain paths
// and file:// URLs are accepted.
type FileFetcher struct{}

// Fetch implements Fetcher.
func (FileFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, locator, err)
	}

	p := locator
	if u, err := url.Parse(locator); err == nil && u.Scheme == "file" {
		p = u.Path
	}
	data, err := os.ReadFile(filepath.FromSlash(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	return data, nil
}

// HTTPFetcher fetches http and https locators.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

// Fetch implements Fetcher. Any status other than 200 is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, locator, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrResourceUnavailable, locator, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, locator, err)
	}
	return data, nil
}

// MultiFetcher dispatches by locator scheme: http and https go to HTTP,
// everything else to File.
type MultiFetcher struct {
	File Fetcher
	HTTP Fetcher
}

// NewFetcher returns the default fetcher for both local and remote catalogs.
func NewFetcher(timeout time.Duration) *MultiFetcher {
	return &MultiFetcher{
		File: FileFetcher{},
		HTTP: NewHTTPFetcher(timeout),
	}
}

// Fetch implements Fetcher.
func (f *MultiFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if isRemote(locator) {
		return f.HTTP.Fetch(ctx, locator)
	}
	return f.File.Fetch(ctx, locator)
}

func isRemote(locator string) bool {
	l := strings.ToLower(locator)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// ResolveLocator resolves ref against the location of base, the way a
// relative link resolves against the document that contains it. Backslash
// separators in either argument are treated as forward slashes.
func ResolveLocator(base, ref string) string {
	base = strings.ReplaceAll(base, `\`, "/")
	ref = strings.ReplaceAll(ref, `\`, "/")

	if strings.Contains(base, "://") {
		b, err := url.Parse(base)
		if err == nil {
			if r, err := url.Parse(ref); err == nil {
				return b.ResolveReference(r).String()
			}
		}
	}

	if strings.Contains(ref, "://") || path.IsAbs(ref) || filepath.IsAbs(ref) {
		return ref
	}
	dir := base
	if !strings.HasSuffix(base, "/") {
		dir = path.Dir(base)
	}
	return path.Join(dir, ref)
}

// RootLocator turns a catalog root into a base that ResolveLocator treats
// as a directory.
func RootLocator(root string) string {
	root = strings.ReplaceAll(root, `\`, "/")
	if root == "" {
		return "./"
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}
