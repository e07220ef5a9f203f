package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
)

type fakePage struct {
	html         string
	url          string
	dataLayer    string
	dataLayerErr error
	waitErr      error
	waited       []string
}

func (p *fakePage) WaitForSelector(_ context.Context, selector string, _ time.Duration) error {
	p.waited = append(p.waited, selector)
	return p.waitErr
}

func (p *fakePage) Evaluate(_ context.Context, expression string) (any, error) {
	switch expression {
	case documentHTMLScript:
		return p.html, nil
	case dataLayerScript:
		if p.dataLayerErr != nil {
			return nil, p.dataLayerErr
		}
		return p.dataLayer, nil
	}
	return nil, fmt.Errorf("unexpected expression %q", expression)
}

func (p *fakePage) URL() string {
	return p.url
}

type fakeDoer struct {
	status   int
	body     string
	err      error
	requests []*fhttp.Request
}

func (d *fakeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return nil, d.err
	}
	status := d.status
	if status == 0 {
		status = fhttp.StatusOK
	}
	return &fhttp.Response{
		StatusCode: status,
		Header:     fhttp.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(d.body)),
	}, nil
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}
