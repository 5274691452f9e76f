package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	fetchTimeout   = 10 * time.Second
	fetchRetries   = 2 // retries after the first attempt, 3 attempts total
	fetchRetryWait = 100 * time.Millisecond
)

// Fetcher retrieves raw provider payloads over HTTP with bounded retries.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher() *Fetcher {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetRetryCount(fetchRetries).
		SetRetryWaitTime(fetchRetryWait).
		SetRetryMaxWaitTime(fetchRetryWait). // fixed inter-attempt delay, no backoff growth
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.IsError()
		})
	return &Fetcher{client: client}
}

// Fetch GETs url and returns the response body. Transport errors and non-2xx
// statuses are retried up to the attempt limit; an exhausted budget is an
// error for the caller to log and skip, never fatal to the overall run.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
