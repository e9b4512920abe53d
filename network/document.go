package network

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// RequestOption customizes a single request.
type RequestOption func(*resty.Request)

// WithReferer sets the Referer header.
func WithReferer(referer string) RequestOption {
	return func(r *resty.Request) {
		if referer != "" {
			r.SetHeader("Referer", referer)
		}
	}
}

// WithHeader sets an arbitrary header.
func WithHeader(name, value string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeader(name, value)
	}
}

// WithCookies attaches cookies by name.
func WithCookies(cookies map[string]string) RequestOption {
	return func(r *resty.Request) {
		for name, value := range cookies {
			r.SetCookie(newCookie(name, value))
		}
	}
}

// Get performs a GET and fails on transport errors and non-2xx statuses.
func Get(ctx context.Context, client *resty.Client, url string, opts ...RequestOption) (*resty.Response, error) {
	req := client.R().SetContext(ctx)
	for _, opt := range opts {
		opt(req)
	}

	res, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}

	if err := Check(res); err != nil {
		return nil, err
	}

	return res, nil
}

// Document GETs url and parses the body as HTML.
func Document(ctx context.Context, client *resty.Client, url string, opts ...RequestOption) (*goquery.Document, error) {
	res, err := Get(ctx, client, url, opts...)
	if err != nil {
		return nil, err
	}

	return Parse(res)
}

// Parse reads an HTML document out of a response body.
func Parse(res *resty.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", res.Request.URL, err)
	}

	if raw := res.RawResponse; raw != nil && raw.Request != nil {
		doc.Url = raw.Request.URL
	}

	return doc, nil
}

// FinalURL returns the URL the response was served from after redirects.
func FinalURL(res *resty.Response) string {
	if raw := res.RawResponse; raw != nil && raw.Request != nil {
		return raw.Request.URL.String()
	}
	return res.Request.URL
}
