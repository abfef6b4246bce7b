// Package client calls a running pwdcheck API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/bhataakib02/cybersecurityCasestudy/pkg/compliance"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

const userAgent = "pwdcheck-client/1.0"

// Config configures a Client. Zero values use the defaults.
type Config struct {
	// BaseURL of the server, https://localhost:3100 for example.
	BaseURL string
	// RetryMax is the number of retries on connection errors, 429 and 5xx responses. Default 4.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// BatchSize is the number of passwords per batch request. It must not exceed the server's
	// MAX_BATCH. Default 1000.
	BatchSize int
	// HTTPClient replaces the underlying client, to set TLS options for example.
	HTTPClient *http.Client
}

// Analysis is the server's evaluation of one password.
type Analysis struct {
	strength.Result
	CrackTimeDisplay string   `json:"crackTimeDisplay"`
	Suggestions      []string `json:"suggestions"`
}

type batchItem struct {
	Index  int             `json:"index"`
	Result strength.Result `json:"result"`
}

type batchResponse struct {
	Total int         `json:"total"`
	Items []batchItem `json:"items"`
}

// StatusError is returned when the server answers with a non 2xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL   string
	batchSize int
	http      *retryablehttp.Client
}

func New(config Config) *Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 4
	if config.RetryMax > 0 {
		client.RetryMax = config.RetryMax
	}
	if config.RetryWaitMin > 0 {
		client.RetryWaitMin = config.RetryWaitMin
	}
	if config.RetryWaitMax > 0 {
		client.RetryWaitMax = config.RetryWaitMax
	}
	// the last response is returned instead of a generic error, its status is reported
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			log.Debug().Msgf("retrying %s %s, attempt %d", req.Method, req.URL.Path, attempt)
		}
	}

	if config.HTTPClient != nil {
		client.HTTPClient = config.HTTPClient
	} else {
		client.HTTPClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				IdleConnTimeout:       10 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		}
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	return &Client{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		batchSize: batchSize,
		http:      client,
	}
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for %s", path)
		}
	}(res.Body)

	if res.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(res.StatusCode)
		}
		return &StatusError{Code: res.StatusCode, Message: e.Error}
	}

	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response of %s: %w", path, err)
	}
	return nil
}

// Analyze evaluates one password on the server.
func (c *Client) Analyze(ctx context.Context, password string) (Analysis, error) {
	var out Analysis
	err := c.post(ctx, "/v1/analyze", map[string]string{"password": password}, &out)
	return out, err
}

// AnalyzeBatch evaluates passwords in requests of at most BatchSize passwords. The result at
// index i belongs to passwords[i].
func (c *Client) AnalyzeBatch(ctx context.Context, passwords []string) ([]strength.Result, error) {
	results := make([]strength.Result, len(passwords))
	for start := 0; start < len(passwords); start += c.batchSize {
		end := min(start+c.batchSize, len(passwords))

		var out batchResponse
		if err := c.post(ctx, "/v1/analyze/batch", map[string][]string{"passwords": passwords[start:end]}, &out); err != nil {
			return nil, err
		}
		if out.Total != end-start {
			return nil, fmt.Errorf("server evaluated %d passwords, %d were sent", out.Total, end-start)
		}
		for _, item := range out.Items {
			if item.Index < 0 || item.Index >= end-start {
				return nil, fmt.Errorf("server returned an unknown index %d", item.Index)
			}
			results[start+item.Index] = item.Result
		}
		log.Debug().Msgf("evaluated passwords %d to %d remotely", start, end)
	}
	return results, nil
}

// Compliance returns the server's compliance report of a password.
func (c *Client) Compliance(ctx context.Context, password string) (compliance.Report, error) {
	var out compliance.Report
	err := c.post(ctx, "/v1/compliance", map[string]string{"password": password}, &out)
	return out, err
}
