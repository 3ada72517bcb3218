package scraper

import (
	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

func xingProfile() siteProfile {
	p := siteProfile{
		platform:  jobs.PlatformXing,
		idPrefix:  "xing",
		origin:    "https://www.xing.com",
		searchURL: "https://www.xing.com/jobs",
		keywordSelectors: []string{
			`input[name="keywords"]`,
			`input[placeholder*="Job title"]`,
			`input[placeholder*="Jobtitel"]`,
		},
		locationSelectors: []string{
			`input[name="location"]`,
			`input[placeholder*="City"]`,
			`input[placeholder*="Stadt"]`,
		},
		submitSelectors: []string{
			`button[type="submit"]`,
			`.search-button`,
		},
		resultsSelectors: []string{
			`.job-item`,
			`.listing-item`,
			`[class*="job-teaser"]`,
		},
	}
	p.extractJS = extractRowsJS(
		[]string{`.job-item`, `.listing-item`, `[class*="job-teaser"]`, `article`},
		[]string{`h3 a`, `.job-title a`, `[class*="title"] a`, `h3`},
		[]string{`.company-name`, `[class*="company"]`},
		[]string{`.location`, `[class*="location"]`},
		[]string{`[class*="salary"]`},
		[]string{`h3 a`, `.job-title a`, `a`},
	)
	return p
}

func NewXing(session *browser.Session, log *logging.Logger) Adapter {
	return newSiteAdapter(session, log, xingProfile())
}
