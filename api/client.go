// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package api provides a client for the patient and attachment REST API.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/base/iox/jsonx"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp"
)

// ErrNoLink is returned when an entity lacks a link with a required relation.
var ErrNoLink = errors.New("api: missing link")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Client fetches patients, attachments and attachment payloads.
// Each method performs independent GET requests without retries.
type Client struct {

	// Root is the API root URL, e.g. http://localhost:8000.
	Root string

	// HTTP is the underlying client.
	HTTP *http.Client
}

// Option configures a [Client].
type Option func(c *Client)

// WithHTTPClient sets the underlying [http.Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTP = hc }
}

// NewClient returns a client for the API at the given root URL.
func NewClient(root string, opts ...Option) *Client {
	c := &Client{Root: strings.TrimSuffix(root, "/"), HTTP: http.DefaultClient}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Resolve returns the absolute URL for an API-relative href.
// Absolute hrefs are returned unchanged.
func (c *Client) Resolve(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return c.Root + href
}

// get performs a GET of the given href and returns the open response body.
// The caller must close it.
func (c *Client) get(ctx context.Context, href string) (*http.Response, error) {
	u := c.Resolve(href)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}
	return resp, nil
}

// JSON decodes the JSON document at the given href into v.
func (c *Client) JSON(ctx context.Context, href string, v any) error {
	resp, err := c.get(ctx, href)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := jsonx.Read(v, resp.Body); err != nil {
		return fmt.Errorf("api: decoding %s: %w", href, err)
	}
	return nil
}

// Patients returns the summaries of all patients.
func (c *Client) Patients(ctx context.Context) ([]PatientSummary, error) {
	var ps []PatientSummary
	if err := c.JSON(ctx, "/patients/", &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// Patient returns the full patient with the given id, with its
// attachments fetched through the "attachments" link.
func (c *Client) Patient(ctx context.Context, id string) (*Patient, error) {
	p := &Patient{}
	if err := c.JSON(ctx, "/patients/"+url.PathEscape(id), p); err != nil {
		return nil, err
	}
	href, err := p.Href("attachments")
	if err != nil {
		return nil, err
	}
	p.Attachments, err = c.Attachments(ctx, href)
	if err != nil {
		return nil, err
	}
	slog.Debug("fetched patient", "id", id, "attachments", len(p.Attachments))
	return p, nil
}

// Attachments returns the attachments listed at the given href.
func (c *Client) Attachments(ctx context.Context, href string) ([]Attachment, error) {
	var as []Attachment
	if err := c.JSON(ctx, href, &as); err != nil {
		return nil, err
	}
	return as, nil
}

// Payload is a downloaded attachment payload.
type Payload struct {

	// URL is the absolute URL the payload was fetched from.
	URL string

	// ContentType is the Content-Type reported by the server.
	ContentType string

	// Data is the raw payload.
	Data []byte
}

// Data downloads the payload at the given href.
func (c *Client) Data(ctx context.Context, href string) (*Payload, error) {
	resp, err := c.get(ctx, href)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Payload{URL: resp.Request.URL.String(), ContentType: resp.Header.Get("Content-Type"), Data: b}, nil
}

// AttachmentData downloads the payload of the given attachment.
func (c *Client) AttachmentData(ctx context.Context, a *Attachment) (*Payload, error) {
	href, err := a.DataLink()
	if err != nil {
		return nil, err
	}
	return c.Data(ctx, href)
}

// Sniff returns the MIME type detected from the payload bytes,
// or "" if it is not a known binary format (e.g. JSON text).
func (p *Payload) Sniff() string {
	kind, err := filetype.Match(p.Data)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// Image decodes the payload as an image.
func (p *Payload) Image() (image.Image, error) {
	if !filetype.IsImage(p.Data) {
		return nil, fmt.Errorf("api: payload from %s is not an image (content type %q)", p.URL, p.ContentType)
	}
	img, _, err := imagex.Read(bytes.NewReader(p.Data))
	return img, err
}
