package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// Submitter delivers a validated form.
type Submitter interface {
	Submit(ctx context.Context, f Form) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, f Form) error

func (fn SubmitterFunc) Submit(ctx context.Context, f Form) error { return fn(ctx, f) }

// Chain runs each submitter in order and stops at the first error.
type Chain []Submitter

func (c Chain) Submit(ctx context.Context, f Form) error {
	for _, s := range c {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Forwarder posts the form URL-encoded to an external form handler, such
// as a Netlify site's own address. Any 2xx response is a success.
type Forwarder struct {
	URL    string
	Client *http.Client
}

func NewForwarder(target string) *Forwarder {
	return &Forwarder{URL: target, Client: cleanhttp.DefaultPooledClient()}
}

func (fw *Forwarder) Submit(ctx context.Context, f Form) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fw.URL, strings.NewReader(f.Values().Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	client := fw.Client
	if client == nil {
		client = cleanhttp.DefaultClient()
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("forward: %w", err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("forward: unexpected status %s", res.Status)
	}
	return nil
}
