package scraper

import (
	"context"
	"errors"

	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/runlog"
)

func indeedProfile() siteProfile {
	p := siteProfile{
		platform:  jobs.PlatformIndeed,
		idPrefix:  "indeed",
		origin:    "https://de.indeed.com",
		searchURL: "https://de.indeed.com/jobs",
		keywordSelectors: []string{
			`input[name="q"]`,
			`input[id="text-input-what"]`,
		},
		locationSelectors: []string{
			`input[name="l"]`,
			`input[id="text-input-where"]`,
		},
		submitSelectors: []string{
			`button[type="submit"]`,
			`.yosegi-InlineWhatWhere-primaryButton`,
		},
		resultsSelectors: []string{
			`.jobsearch-ResultsList > li`,
			`.job_seen_beacon`,
		},
	}
	p.extractJS = extractRowsJS(
		p.resultsSelectors,
		[]string{`.jobTitle`, `h2.jobTitle span`, `a.jcs-JobTitle`},
		[]string{`.companyName`, `[data-testid="company-name"]`},
		[]string{`.companyLocation`, `[data-testid="text-location"]`},
		[]string{`.salary-snippet`, `.salary-snippet-container`, `[class*="salary"]`},
		[]string{`a.jcs-JobTitle`, `h2.jobTitle a`, `a`},
	)
	return p
}

func NewIndeed(session *browser.Session, log *logging.Logger) Adapter {
	return newSiteAdapter(session, log, indeedProfile())
}

func applyIndeed(page context.Context, rec *runlog.Recorder, _ string) (string, error) {
	labels := []string{"Apply now", "Jetzt bewerben"}
	clicked, err := clickByText(page, labels)
	if err != nil {
		rec.Click("button:apply-now", runlog.ResultFailed, err.Error())
		return "", err
	}
	if !clicked {
		rec.Click("button:apply-now", runlog.ResultFailed, "no apply button found")
		return "", errors.New("no apply button found")
	}
	rec.Click("button:apply-now", runlog.ResultSuccess, "")
	return "Indeed application submitted", nil
}
