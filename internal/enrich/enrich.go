// Package enrich fills in posting descriptions the browser extraction does
// not capture. Detail pages are mostly static HTML, so a plain HTTP crawl
// is enough and much cheaper than spending a browser tab per posting.
package enrich

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

const maxDescriptionLen = 4000

// descriptionSelectors per platform host, most specific first.
var descriptionSelectors = map[string][]string{
	"linkedin.com":           {".show-more-less-html__markup", ".description__text"},
	"de.indeed.com":          {"#jobDescriptionText"},
	"stepstone.de":           {`[data-at="job-ad-content"]`, ".job-ad-display"},
	"xing.com":               {`[data-testid="expandable-content"]`, ".job-description"},
	"arbeitsagentur.de":      {"#detail-beschreibung-beschreibung", ".beschreibung"},
	"jobboerse.arbeitsagentur.de": {"#detail-beschreibung-beschreibung", ".beschreibung"},
}

type Fetcher struct {
	log *logging.Logger
}

func NewFetcher(log *logging.Logger) *Fetcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Fetcher{log: log}
}

// Description fetches the posting's detail page and extracts the job
// description text. Unknown hosts fall back to scanning common description
// containers.
func (f *Fetcher) Description(ctx context.Context, jobURL string) (string, error) {
	host := hostFromURL(jobURL)
	if host == "" {
		return "", nil
	}

	c := colly.NewCollector(colly.AllowedDomains(host, strings.TrimPrefix(host, "www.")))
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 800 * time.Millisecond, Delay: 400 * time.Millisecond})

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	var desc string
	for _, sel := range selectorsForHost(host) {
		c.OnHTML(sel, func(e *colly.HTMLElement) {
			if strings.TrimSpace(desc) == "" {
				desc = strings.TrimSpace(e.Text)
			}
		})
	}

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err := c.Visit(jobURL); err != nil {
		return "", err
	}
	c.Wait()
	if reqErr != nil {
		return "", reqErr
	}

	return clampDescription(desc), nil
}

// Postings enriches a batch in place through a bounded worker pool.
// Failures leave the posting's description empty rather than failing the
// batch.
func (f *Fetcher) Postings(ctx context.Context, list []jobs.Posting, workers int) []jobs.Posting {
	pool := NewWorkerPool(workers, len(list))
	pool.SetRateLimit(2)
	results := pool.Run(ctx)

	for i := range list {
		if list[i].Description != "" || list[i].URL == "" || list[i].URL == "#" {
			continue
		}
		i := i
		pool.Submit(func(ctx context.Context) error {
			desc, err := f.Description(ctx, list[i].URL)
			if err != nil {
				f.log.Debug("description fetch failed", "url", list[i].URL, "error", err)
				return err
			}
			list[i].Description = desc
			return nil
		})
	}

	pool.Close()
	for range results {
	}
	return list
}

func selectorsForHost(host string) []string {
	host = strings.TrimPrefix(host, "www.")
	for suffix, sels := range descriptionSelectors {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return sels
		}
	}
	return []string{`[class*="job-description"]`, `[class*="description"]`, "article"}
}

func clampDescription(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDescriptionLen {
		return s[:maxDescriptionLen]
	}
	return s
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"Accept-Language": "de-DE,de;q=0.9,en;q=0.8",
	}
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
