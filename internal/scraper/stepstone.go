package scraper

import (
	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

func stepStoneProfile() siteProfile {
	p := siteProfile{
		platform:  jobs.PlatformStepStone,
		idPrefix:  "stepstone",
		origin:    "https://www.stepstone.de",
		searchURL: "https://www.stepstone.de",
		keywordSelectors: []string{
			`input[name="ke"]`,
			`input[data-at="searchbar-keyword-input"]`,
		},
		locationSelectors: []string{
			`input[name="ao"]`,
			`input[data-at="searchbar-location-input"]`,
		},
		submitSelectors: []string{
			`button[type="submit"]`,
			`.js-advanced-search-submit`,
			`button[data-at="searchbar-search-button"]`,
		},
		resultsSelectors: []string{
			`.js-result-list`,
			`.result-list`,
			`[data-at="job-item"]`,
		},
	}
	p.extractJS = extractRowsJS(
		[]string{`.js-result-list li`, `.result-list li`, `.SC_Result_row`, `[data-at="job-item"]`},
		[]string{`h2 a`, `.result-title a`, `[class*="title"] a`, `[data-at="job-item-title"]`},
		[]string{`.company`, `[class*="company"]`, `[data-at="job-item-company-name"]`},
		[]string{`.location`, `[class*="location"]`, `[data-at="job-item-location"]`},
		[]string{`.salary`, `[class*="salary"]`},
		[]string{`h2 a`, `.result-title a`, `a`},
	)
	return p
}

func NewStepStone(session *browser.Session, log *logging.Logger) Adapter {
	return newSiteAdapter(session, log, stepStoneProfile())
}
