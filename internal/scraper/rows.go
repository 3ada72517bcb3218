package scraper

import (
	"strings"

	"jobwerk/internal/jobs"
)

// rawRow is what the in-page extraction script returns for one result row
// before normalization.
type rawRow struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	URL      string `json:"url"`
}

// normalizeRows turns extracted rows into postings: at most
// maxResultsPerSite survive, rows without a title are dropped rather than
// emitted with placeholder data, a missing company becomes the Unknown
// sentinel, and relative links are rewritten against the platform origin.
func normalizeRows(rows []rawRow, p siteProfile, fallbackLocation string) []jobs.Posting {
	out := make([]jobs.Posting, 0, len(rows))
	for _, r := range rows {
		if len(out) >= maxResultsPerSite {
			break
		}

		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}

		company := strings.TrimSpace(r.Company)
		if company == "" {
			company = jobs.UnknownCompany
		}

		location := strings.TrimSpace(r.Location)
		if location == "" {
			location = fallbackLocation
		}

		out = append(out, jobs.Posting{
			ID:       jobs.NewID(p.idPrefix),
			Title:    title,
			Company:  company,
			Platform: p.platform.Label(),
			Location: location,
			Salary:   strings.TrimSpace(r.Salary),
			URL:      absoluteURL(p.origin, r.URL),
		})
	}
	return out
}

func absoluteURL(origin, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return "#"
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(origin, "/") + href
	default:
		return strings.TrimRight(origin, "/") + "/" + href
	}
}
