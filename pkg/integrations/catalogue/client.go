package catalogue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coursegraph/coursegraph/pkg/httputil"
	"github.com/coursegraph/coursegraph/pkg/integrations"
)

// CourseInfo holds one course as returned by the catalogue service.
//
// Prerequisites is the raw, unparsed prerequisite sentence; parsing it
// into a requirement tree is the caller's concern.
type CourseInfo struct {
	Code          string `json:"code"`          // Course code (e.g., "CS 101", never empty in valid info)
	Title         string `json:"title"`         // Human-readable course title (may be empty)
	Prerequisites string `json:"prerequisites"` // Raw prerequisite text (empty if none)
}

// Client provides access to a course-catalogue JSON API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a catalogue client for the service at baseURL.
// Responses are cached on disk for cacheTTL; pass a short TTL during
// development to see catalogue changes quickly.
func NewClient(baseURL string, cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return NewClientWithCache(baseURL, cache), nil
}

// NewClientWithCache creates a catalogue client with an explicit cache,
// useful for tests and for sharing one cache across clients.
func NewClientWithCache(baseURL string, cache *httputil.Cache) *Client {
	return &Client{
		Client:  integrations.NewClient(cache.Namespace("catalogue:"), nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Departments lists the department codes the service knows about.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns [integrations.ErrNetwork] for HTTP failures. This method is
// safe for concurrent use.
func (c *Client) Departments(ctx context.Context, refresh bool) ([]string, error) {
	var depts []string
	err := c.Cached(ctx, "departments", refresh, &depts, func() error {
		return c.Get(ctx, c.baseURL+"/departments", &depts)
	})
	if err != nil {
		return nil, err
	}
	return depts, nil
}

// FetchDepartment retrieves all courses of one department.
//
// Returns:
//   - [integrations.ErrNotFound] if the department doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//
// This method is safe for concurrent use.
func (c *Client) FetchDepartment(ctx context.Context, dept string, refresh bool) ([]CourseInfo, error) {
	var courses []CourseInfo
	key := "dept:" + dept
	err := c.Cached(ctx, key, refresh, &courses, func() error {
		url := fmt.Sprintf("%s/departments/%s/courses", c.baseURL, integrations.URLEncode(dept))
		if err := c.Get(ctx, url, &courses); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: department %s", err, dept)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// FetchCatalog retrieves the courses of the given departments and merges
// them into the raw entry mapping the catalog builder consumes. When
// depts is empty, all departments reported by the service are fetched.
//
// Departments are fetched in sorted order so partial failures are
// reproducible. The first error aborts the fetch.
func (c *Client) FetchCatalog(ctx context.Context, depts []string, refresh bool) (map[string]string, error) {
	if len(depts) == 0 {
		all, err := c.Departments(ctx, refresh)
		if err != nil {
			return nil, err
		}
		depts = all
	}
	sorted := append([]string(nil), depts...)
	sort.Strings(sorted)

	entries := make(map[string]string)
	for _, dept := range sorted {
		courses, err := c.FetchDepartment(ctx, dept, refresh)
		if err != nil {
			return nil, err
		}
		for _, course := range courses {
			entries[course.Code] = course.Prerequisites
		}
	}
	return entries, nil
}
