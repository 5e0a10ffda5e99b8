package edinet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"edinet_ingest/pkg/core/logger"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the EDINET API v2 root.
	DefaultBaseURL = "https://api.edinet-fsa.go.jp/api/v2"

	// UserAgent identifies this client.
	UserAgent = "edinet-ingest/1.0"

	// DefaultInterval spaces consecutive requests.
	DefaultInterval = 250 * time.Millisecond

	listTypeMetadataAndResults = "2"
	downloadTypeXBRL           = "1"
)

// ErrArchiveUnavailable is returned when EDINET has no XBRL archive for a
// document. The API answers such requests with a JSON error body.
var ErrArchiveUnavailable = errors.New("edinet: xbrl archive unavailable")

// =============================================================================
// EDINET CLIENT
// =============================================================================

// Client handles EDINET API requests. All requests of one Client share a
// rate limiter, so it is safe to call from several workers.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	archives   *ArchiveCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default 60s-timeout HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithInterval sets the minimum spacing between requests. Zero disables
// throttling.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a client that stores archives in archives.
func NewClient(apiKey string, archives *ArchiveCache, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Every(DefaultInterval), 1),
		archives: archives,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Archives returns the archive cache downloads are written to.
func (c *Client) Archives() *ArchiveCache {
	return c.archives
}

// ListDocuments fetches the documents filed on date (YYYY-MM-DD). A listing
// whose metadata status is not "200" is returned as is; check OK.
func (c *Client) ListDocuments(ctx context.Context, date string) (*DocumentList, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("type", listTypeMetadataAndResults)

	resp, err := c.get(ctx, "/documents.json", q)
	if err != nil {
		return nil, errors.Wrapf(err, "edinet: list documents for %s", date)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("edinet: list documents for %s: %s", date, describeFailure(resp))
	}

	var list DocumentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, errors.Wrapf(err, "edinet: decode document list for %s", date)
	}

	logger.Logger.Debugw("Listed documents",
		logger.FieldDate, date,
		logger.FieldStatus, list.Metadata.Status,
		logger.FieldCount, len(list.Results),
	)
	return &list, nil
}

// DownloadArchive fetches the XBRL archive of docID into the archive cache
// and returns its path relative to the cache base directory. An archive
// already in the cache is not downloaded again.
func (c *Client) DownloadArchive(ctx context.Context, docID string) (string, error) {
	if c.archives.Has(docID) {
		logger.Logger.Debugw("Archive cache hit", logger.FieldDocID, docID)
		return c.archives.RelPath(docID), nil
	}

	q := url.Values{}
	q.Set("type", downloadTypeXBRL)

	resp, err := c.get(ctx, "/documents/"+url.PathEscape(docID), q)
	if err != nil {
		return "", errors.Wrapf(err, "edinet: download %s", docID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 || isJSON(resp) {
		return "", errors.Wrapf(ErrArchiveUnavailable, "%s: %s", docID, describeFailure(resp))
	}

	rel, err := c.archives.Store(docID, resp.Body)
	if err != nil {
		return "", err
	}
	logger.Logger.Debugw("Downloaded archive", logger.FieldDocID, docID, logger.FieldPath, rel)
	return rel, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// The key travels as a query parameter; keep it out of logs.
	logURL := c.baseURL + path + "?" + q.Encode()
	q.Set("Subscription-Key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, errors.Wrapf(urlErr.Err, "GET %s", logURL)
		}
		return nil, err
	}
	logger.Logger.Debugw("EDINET request",
		logger.FieldURL, logURL,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func isJSON(resp *http.Response) bool {
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// describeFailure summarises an unsuccessful response, using the API error
// body when there is one.
func describeFailure(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, apiErr.Message)
	}
	var list DocumentList
	if json.Unmarshal(body, &list) == nil && list.Metadata.Message != "" {
		return fmt.Sprintf("status %s: %s", list.Metadata.Status, list.Metadata.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
