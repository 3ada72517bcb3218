package scraper

import (
	"context"
	"errors"

	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/runlog"
)

func linkedInProfile() siteProfile {
	p := siteProfile{
		platform:  jobs.PlatformLinkedIn,
		idPrefix:  "li",
		origin:    "https://www.linkedin.com",
		searchURL: "https://www.linkedin.com/jobs/search/",
		keywordSelectors: []string{
			`input[aria-label*="Search by title"]`,
			`input[aria-label*="Search"]`,
			`input[id*="jobs-search-box-keyword"]`,
		},
		locationSelectors: []string{
			`input[aria-label*="City"]`,
			`input[id*="jobs-search-box-location"]`,
		},
		submitSelectors: []string{
			`button[aria-label*="Search"]`,
			`button[type="submit"]`,
		},
		resultsSelectors: []string{
			`.jobs-search-results__list-item`,
			`.job-card-container`,
			`[data-job-id]`,
		},
	}
	p.extractJS = extractRowsJS(
		p.resultsSelectors,
		[]string{`.job-card-list__title`, `.job-card-container__link`, `a[data-control-name="job_card_title"]`},
		[]string{`.job-card-container__companyName`, `.job-card-container__company-name`, `.job-card-container__primary-description`},
		[]string{`.job-card-container__metadata-item`, `.job-card-list__metadata-item`},
		nil, // LinkedIn cards do not expose salary
		[]string{`a.job-card-list__cta`, `a[href*="/jobs/view/"]`, `a`},
	)
	return p
}

// NewLinkedIn builds the LinkedIn adapter. The search UI only returns
// useful results for logged-in sessions, which is why the session manager
// prefers attaching to an authenticated browser.
func NewLinkedIn(session *browser.Session, log *logging.Logger) Adapter {
	return newSiteAdapter(session, log, linkedInProfile())
}

// applyLinkedIn drives the Easy Apply entry point. Clicking the button is
// the full extent of the routine; the multi-step modal that follows is out
// of depth and left to the human.
func applyLinkedIn(page context.Context, rec *runlog.Recorder, _ string) (string, error) {
	labels := []string{"Easy Apply", "Einfach bewerben"}
	clicked, err := clickByText(page, labels)
	if err != nil {
		rec.Click("button:easy-apply", runlog.ResultFailed, err.Error())
		return "", err
	}
	if !clicked {
		rec.Click("button:easy-apply", runlog.ResultFailed, "no Easy Apply button found")
		return "", errors.New("no Easy Apply button found")
	}
	rec.Click("button:easy-apply", runlog.ResultSuccess, "")
	return "LinkedIn application submitted", nil
}
