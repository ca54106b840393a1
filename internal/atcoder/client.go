// Package atcoder fetches the kenkoooo AtCoder Problems datasets
// (problems, difficulty models, contests). The upstream API is a set of
// static JSON resources with no auth and no pagination; the only rule
// is to keep at least one second between requests.
package atcoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// DefaultBaseURL is the public AtCoder Problems resource root.
const DefaultBaseURL = "https://kenkoooo.com/atcoder/resources"

// minRequestInterval is the minimum spacing between request starts,
// shared across all three endpoints and all callers of one client.
const minRequestInterval = time.Second

// FetchError reports a failed catalog fetch: either a non-2xx response
// (StatusCode set) or a transport failure (Err set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client is a rate-limited AtCoder Problems API client. All three
// endpoints serialize through one limiter, so concurrent callers are
// still spaced a full interval apart.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a client against ATCODER_BASE_URL or the public API.
func New() *Client {
	baseURL := os.Getenv("ATCODER_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return NewWithBaseURL(baseURL)
}

// NewWithBaseURL creates a client against the given resource root.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(minRequestInterval), 1),
	}
}

// FetchProblems downloads the full problem list.
func (c *Client) FetchProblems(ctx context.Context) ([]models.Problem, error) {
	var problems []models.Problem
	if err := c.getJSON(ctx, "/problems.json", &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// FetchProblemModels downloads the difficulty models. The endpoint
// returns an object keyed by problem id; each record is reshaped to
// carry its key as ProblemID.
func (c *Client) FetchProblemModels(ctx context.Context) ([]models.ProblemModel, error) {
	var byID map[string]models.ProblemModel
	if err := c.getJSON(ctx, "/problem-models.json", &byID); err != nil {
		return nil, err
	}

	problemModels := make([]models.ProblemModel, 0, len(byID))
	for problemID, model := range byID {
		model.ProblemID = problemID
		problemModels = append(problemModels, model)
	}
	return problemModels, nil
}

// FetchContests downloads the full contest list.
func (c *Client) FetchContests(ctx context.Context) ([]models.Contest, error) {
	var contests []models.Contest
	if err := c.getJSON(ctx, "/contests.json", &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// getJSON performs one rate-limited GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{URL: url, Err: err}
	}
	return nil
}
