// Package scraper drives the five job boards through a shared browser
// session and merges their results. Each platform gets its own adapter so
// one site's markup change cannot destabilize the others; the adapters
// share a single search skeleton and differ only in their selector lists.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

// Adapter is one platform's scraping routine. Search is one-shot and
// finite; an error means the whole adapter failed and is absorbed by the
// orchestrator, never propagated to siblings.
type Adapter interface {
	Platform() jobs.Platform
	Search(ctx context.Context, keyword, location string) ([]jobs.Posting, error)
}

const (
	maxResultsPerSite = 20
	navigateTimeout   = 30 * time.Second
	resultsTimeout    = 15 * time.Second
	inputTimeout      = 3 * time.Second
	scrollCycles      = 3
	scrollDelay       = 500 * time.Millisecond
)

// siteProfile carries everything platform-specific: where to search and
// which selectors to try, in priority order, for each field. The markup on
// these sites uses several interchangeable class conventions, so every
// field gets a fallback list rather than a single selector.
type siteProfile struct {
	platform          jobs.Platform
	idPrefix          string
	origin            string
	searchURL         string
	keywordSelectors  []string
	locationSelectors []string
	submitSelectors   []string
	resultsSelectors  []string
	extractJS         string
}

type siteAdapter struct {
	session *browser.Session
	log     *logging.Logger
	profile siteProfile
}

func newSiteAdapter(session *browser.Session, log *logging.Logger, p siteProfile) *siteAdapter {
	if log == nil {
		log = logging.Nop()
	}
	return &siteAdapter{session: session, log: log.With("platform", p.platform.Label()), profile: p}
}

func (a *siteAdapter) Platform() jobs.Platform {
	return a.profile.platform
}

func (a *siteAdapter) Search(ctx context.Context, keyword, location string) ([]jobs.Posting, error) {
	page, cancel, err := a.session.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	navCtx, navCancel := context.WithTimeout(page, navigateTimeout)
	defer navCancel()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(a.profile.searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("%s: navigate: %w", a.profile.platform, err)
	}

	dismissCookieBanner(page)

	if err := fillField(page, a.profile.keywordSelectors, keyword); err != nil {
		return nil, fmt.Errorf("%s: keyword input: %w", a.profile.platform, err)
	}
	if err := fillField(page, a.profile.locationSelectors, location); err != nil {
		return nil, fmt.Errorf("%s: location input: %w", a.profile.platform, err)
	}
	if err := clickFirst(page, a.profile.submitSelectors); err != nil {
		return nil, fmt.Errorf("%s: submit: %w", a.profile.platform, err)
	}

	// No results container within the timeout means zero results, not a
	// failure; these sites render an empty page for fruitless queries.
	waitCtx, waitCancel := context.WithTimeout(page, resultsTimeout)
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(joinSelectors(a.profile.resultsSelectors), chromedp.ByQuery)); err != nil {
		waitCancel()
		if errors.Is(err, context.DeadlineExceeded) {
			a.log.Debug("results container never appeared, treating as empty")
			return []jobs.Posting{}, nil
		}
		return nil, fmt.Errorf("%s: results wait: %w", a.profile.platform, err)
	}
	waitCancel()

	scrollResults(page)

	var rows []rawRow
	evalCtx, evalCancel := context.WithTimeout(page, 10*time.Second)
	defer evalCancel()
	if err := chromedp.Run(evalCtx, chromedp.Evaluate(a.profile.extractJS, &rows)); err != nil {
		return nil, fmt.Errorf("%s: extract: %w", a.profile.platform, err)
	}

	postings := normalizeRows(rows, a.profile, location)
	a.log.Info("search finished", "keyword", keyword, "rows", len(rows), "postings", len(postings))
	return postings, nil
}

// fillField tries each candidate selector in order and types into the
// first one that becomes visible.
func fillField(page context.Context, selectors []string, value string) error {
	for _, sel := range selectors {
		c, cancel := context.WithTimeout(page, inputTimeout)
		err := chromedp.Run(c,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.SendKeys(sel, value, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("no input matched %v", selectors)
}

func clickFirst(page context.Context, selectors []string) error {
	for _, sel := range selectors {
		c, cancel := context.WithTimeout(page, inputTimeout)
		err := chromedp.Run(c, chromedp.Click(sel, chromedp.ByQuery))
		cancel()
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("no clickable element matched %v", selectors)
}

// dismissCookieBanner clicks through the consent overlay when one is
// present. Best-effort: a miss just means the overlay was not there (or
// has yet another markup variant) and the search proceeds regardless.
func dismissCookieBanner(page context.Context) {
	js := `(() => {
		const labels = ['accept', 'akzeptieren', 'agree', 'zustimmen', 'alle akzeptieren', 'verstanden'];
		const candidates = Array.from(document.querySelectorAll('button, [role="button"]'));
		for (const el of candidates) {
			const t = (el.textContent || '').trim().toLowerCase();
			if (t && labels.some(l => t.includes(l))) { el.click(); return true; }
		}
		const scoped = document.querySelector('button[id*="cookie"], button[class*="cookie"], [id*="cookie"] button, [class*="cookie"] button');
		if (scoped) { scoped.click(); return true; }
		return false;
	})()`

	var clicked bool
	c, cancel := context.WithTimeout(page, 5*time.Second)
	defer cancel()
	if err := chromedp.Run(c, chromedp.Evaluate(js, &clicked)); err != nil {
		return
	}
	if clicked {
		_ = chromedp.Run(c, chromedp.Sleep(500*time.Millisecond))
	}
}

// scrollResults nudges lazy-loaded pagination with a few fixed
// scroll-and-wait cycles.
func scrollResults(page context.Context) {
	c, cancel := context.WithTimeout(page, 10*time.Second)
	defer cancel()
	_ = chromedp.Run(c, chromedp.ActionFunc(func(ctx context.Context) error {
		for i := 0; i < scrollCycles; i++ {
			if err := chromedp.Evaluate(`window.scrollBy(0, 600)`, nil).Do(ctx); err != nil {
				return err
			}
			if err := chromedp.Sleep(scrollDelay).Do(ctx); err != nil {
				return err
			}
		}
		return nil
	}))
}

// clickByText locates a button whose visible text contains one of the
// labels (case-insensitive) and clicks it. Used by the apply routines,
// which must match at least one English and one German button label.
func clickByText(page context.Context, labels []string) (bool, error) {
	js := fmt.Sprintf(`(() => {
		const labels = %s.map(s => s.toLowerCase());
		const els = Array.from(document.querySelectorAll('button, a[role="button"], input[type="submit"]'));
		for (const el of els) {
			const t = ((el.textContent || el.value) || '').trim().toLowerCase();
			if (t && labels.some(l => t.includes(l))) { el.click(); return true; }
		}
		return false;
	})()`, mustJSON(labels))

	var clicked bool
	c, cancel := context.WithTimeout(page, 10*time.Second)
	defer cancel()
	err := chromedp.Run(c, chromedp.Evaluate(js, &clicked))
	return clicked, err
}

// extractRowsJS renders the one-shot extraction script: enumerate result
// rows and resolve each field through its selector fallback list, first
// match wins.
func extractRowsJS(rowSelectors, titleSel, companySel, locationSel, salarySel, linkSel []string) string {
	return fmt.Sprintf(`(() => {
		const pick = (root, sels) => {
			for (const s of sels) {
				const el = root.querySelector(s);
				if (el) {
					const t = (el.textContent || '').trim();
					if (t) return t;
				}
			}
			return '';
		};
		const pickHref = (root, sels) => {
			for (const s of sels) {
				const el = root.querySelector(s);
				if (el) {
					const h = el.getAttribute('href');
					if (h) return h;
				}
			}
			return '';
		};
		const rows = Array.from(document.querySelectorAll(%s));
		return rows.map(r => ({
			title: pick(r, %s),
			company: pick(r, %s),
			location: pick(r, %s),
			salary: pick(r, %s),
			url: pickHref(r, %s)
		}));
	})()`,
		mustJSON(joinSelectors(rowSelectors)),
		mustJSON(titleSel), mustJSON(companySel), mustJSON(locationSel), mustJSON(salarySel), mustJSON(linkSel))
}

func joinSelectors(sels []string) string {
	out := ""
	for i, s := range sels {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
