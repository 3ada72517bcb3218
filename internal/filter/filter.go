// Package filter applies the user's blacklist/whitelist/salary preferences
// to tracked postings after the fact. Salary is free text as scraped
// ("€70,000 - €90,000", "70.000 € p.a."); the parser pulls the lower bound
// out of whichever thousands grouping the platform used.
package filter

import (
	"regexp"
	"strconv"
	"strings"

	"jobwerk/internal/store"
)

var salaryNumberRe = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+|\d+`)

// SalaryMin extracts the first number from a salary string, treating "."
// and "," as thousands separators. Returns false when no number is found.
func SalaryMin(s string) (int, bool) {
	m := salaryNumberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	m = strings.NewReplacer(".", "", ",", "").Replace(m)
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Apply keeps the postings that pass the advanced filters: company not
// blacklisted, no blacklisted keyword in the title, and salary (when the
// posting has one) at or above the configured minimum. A posting without a
// salary string is kept; the filter cannot judge what it cannot parse.
// Whitelisted companies bypass the salary check.
func Apply(jobsIn []store.Job, f store.JobFilters) []store.Job {
	out := make([]store.Job, 0, len(jobsIn))
	for _, j := range jobsIn {
		if matchesAny(j.Company, f.Blacklist.Companies) {
			continue
		}
		if titleHasKeyword(j.Title, f.Blacklist.Keywords) {
			continue
		}
		if f.Salary.Min > 0 && !matchesAny(j.Company, f.Whitelist.Companies) {
			if min, ok := SalaryMin(j.Salary); ok && min < f.Salary.Min {
				continue
			}
		}
		out = append(out, j)
	}
	return out
}

func matchesAny(company string, names []string) bool {
	c := strings.ToLower(strings.TrimSpace(company))
	if c == "" {
		return false
	}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(c, n) {
			return true
		}
	}
	return false
}

func titleHasKeyword(title string, keywords []string) bool {
	tl := strings.ToLower(title)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(tl, k) {
			return true
		}
	}
	return false
}
