// Package catalog is a client for the Open Library search API.
//
// Search never returns an error. Transport failures, unexpected status codes
// and malformed payloads are logged and reported as an empty SearchOutcome
// whose Status says what happened.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL       = "https://openlibrary.org"
	DefaultCoversBaseURL = "https://covers.openlibrary.org"
	DefaultTimeout       = 8 * time.Second
	DefaultUserAgent     = "PersonalLibrary/1.0 (https://github.com/mrlokans/library)"

	// maxResponseBytes bounds how much of a search response is read.
	maxResponseBytes = 4 << 20

	// maxExactInt is the largest integer a float64 holds exactly.
	maxExactInt = 1 << 53
)

// Status tells how a search response was decoded.
type Status int

const (
	// StatusOK means the response carried a docs list.
	StatusOK Status = iota
	// StatusMissing means the response decoded but had no docs list.
	StatusMissing
	// StatusFailed means the request or the decoding failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	default:
		return "failed"
	}
}

// Record is one search document as returned by Open Library. Optional numeric
// fields are nil when absent, zero or not a whole number.
type Record struct {
	Title            string      `json:"title"`
	AuthorName       AuthorNames `json:"author_name"`
	FirstPublishYear *int        `json:"first_publish_year"`
	CoverID          *int64      `json:"cover_i"`
}

// UnmarshalJSON decodes a search document field by field. A field holding an
// unexpected JSON type falls back to its zero value instead of failing the
// whole document. Zero years and cover IDs are treated as absent.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return nil
	}

	*r = Record{}
	if raw, ok := fields["title"]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err == nil {
			r.Title = title
		}
	}
	if raw, ok := fields["author_name"]; ok {
		var names AuthorNames
		if err := json.Unmarshal(raw, &names); err == nil {
			r.AuthorName = names
		}
	}
	if year := lenientInt(fields["first_publish_year"]); year != nil {
		y := int(*year)
		r.FirstPublishYear = &y
	}
	r.CoverID = lenientInt(fields["cover_i"])
	return nil
}

// lenientInt reads a whole number given as a JSON number or a numeric string.
// Anything else, and zero, yields nil.
func lenientInt(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f == 0 || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return nil
	}
	n := int64(f)
	return &n
}

// Author returns the first author name, or "" when there is none.
func (r Record) Author() string {
	if len(r.AuthorName) == 0 {
		return ""
	}
	return r.AuthorName[0]
}

// AuthorNames decodes author_name whether it is a list or a single string.
type AuthorNames []string

func (a *AuthorNames) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*a = nil
			return nil
		}
		*a = AuthorNames{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*a = list
	return nil
}

// SearchOutcome is the result of a catalog search. Records is never nil.
type SearchOutcome struct {
	Records []Record
	Status  Status
	Err     error
}

// Config configures a Client. Zero values fall back to the defaults.
type Config struct {
	BaseURL       string
	CoversBaseURL string
	Timeout       time.Duration
	UserAgent     string
}

// Client queries the Open Library search endpoint.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	coversBaseURL string
	userAgent     string
}

// NewClient creates a new Open Library client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CoversBaseURL == "" {
		cfg.CoversBaseURL = DefaultCoversBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		coversBaseURL: strings.TrimRight(cfg.CoversBaseURL, "/"),
		userAgent:     cfg.UserAgent,
	}
}

// Search looks up text and returns at most limit records in catalog order.
func (c *Client) Search(ctx context.Context, text string, limit int) SearchOutcome {
	outcome, err := c.search(ctx, text, limit)
	if err != nil {
		log.Printf("[CATALOG] search %q failed: %v", text, err)
		return SearchOutcome{Records: []Record{}, Status: StatusFailed, Err: err}
	}
	if outcome.Status == StatusMissing {
		log.Printf("[CATALOG] search %q: response has no docs list", text)
	}
	return outcome
}

// CoverURL returns the large cover image URL for an Open Library cover ID.
func (c *Client) CoverURL(coverID int64) string {
	return fmt.Sprintf("%s/b/id/%d-L.jpg", c.coversBaseURL, coverID)
}

func (c *Client) search(ctx context.Context, text string, limit int) (SearchOutcome, error) {
	params := url.Values{}
	params.Set("q", text)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return SearchOutcome{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchOutcome{}, fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SearchOutcome{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return SearchOutcome{}, fmt.Errorf("read search response: %w", err)
	}

	return decodeSearchResponse(body, limit)
}

// searchEnvelope keeps docs raw so that a missing or non-list value can be
// told apart from a malformed document.
type searchEnvelope struct {
	Docs json.RawMessage `json:"docs"`
}

var errNotAnObject = errors.New("response is not a JSON object")

// decodeSearchResponse turns a search.json body into an outcome. Documents that
// are not JSON objects are skipped; bad fields inside a document are defaulted.
func decodeSearchResponse(body []byte, limit int) (SearchOutcome, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return SearchOutcome{}, errNotAnObject
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return SearchOutcome{}, fmt.Errorf("decode search response: %w", err)
	}

	docs := bytes.TrimSpace(envelope.Docs)
	if len(docs) == 0 || docs[0] != '[' {
		return SearchOutcome{Records: []Record{}, Status: StatusMissing}, nil
	}

	var rawDocs []json.RawMessage
	if err := json.Unmarshal(docs, &rawDocs); err != nil {
		return SearchOutcome{}, fmt.Errorf("decode docs: %w", err)
	}

	records := make([]Record, 0, len(rawDocs))
	for i, raw := range rawDocs {
		if limit > 0 && len(records) >= limit {
			break
		}
		trimmedDoc := bytes.TrimSpace(raw)
		if len(trimmedDoc) == 0 || trimmedDoc[0] != '{' {
			log.Printf("[CATALOG] skipping document %d: not an object", i)
			continue
		}
		var record Record
		if err := json.Unmarshal(trimmedDoc, &record); err != nil {
			log.Printf("[CATALOG] skipping document %d: %v", i, err)
			continue
		}
		records = append(records, record)
	}

	return SearchOutcome{Records: records, Status: StatusOK}, nil
}
