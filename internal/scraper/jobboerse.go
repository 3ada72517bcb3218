package scraper

import (
	"jobwerk/internal/browser"
	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
)

// Jobbörse is the Agentur für Arbeit board; the markup is German-only.
func jobboerseProfile() siteProfile {
	p := siteProfile{
		platform:  jobs.PlatformJobboerse,
		idPrefix:  "jobboerse",
		origin:    "https://jobboerse.arbeitsagentur.de",
		searchURL: "https://jobboerse.arbeitsagentur.de",
		keywordSelectors: []string{
			`input[name="beruf"]`,
			`input[id*="beruf"]`,
			`input[id*="was-input"]`,
		},
		locationSelectors: []string{
			`input[name="ort"]`,
			`input[id*="ort"]`,
			`input[id*="wo-input"]`,
		},
		submitSelectors: []string{
			`button[type="submit"]`,
			`input[type="submit"]`,
			`.btn-search`,
		},
		resultsSelectors: []string{
			`.trefferListe`,
			`.job-list`,
			`.ergebnis-liste`,
			`#ergebnisliste`,
		},
	}
	p.extractJS = extractRowsJS(
		[]string{`.trefferListe li`, `.job-list li`, `.ergebnis-liste li`, `article`},
		[]string{`h3 a`, `.stellenangebot-title a`, `[class*="title"] a`, `h3`},
		[]string{`.unternehmen`, `.employer`, `[class*="company"]`},
		[]string{`.ort`, `.location`, `[class*="location"]`},
		[]string{`[class*="salary"]`, `[class*="gehalt"]`},
		[]string{`h3 a`, `.stellenangebot-title a`, `a`},
	)
	return p
}

func NewJobboerse(session *browser.Session, log *logging.Logger) Adapter {
	return newSiteAdapter(session, log, jobboerseProfile())
}
