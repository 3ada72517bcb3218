// Package jobs holds the domain model shared by the scrapers, the HTTP
// layer and the stores: postings as extracted from a job board, search
// queries and the apply contract.
package jobs

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Posting is a job record as extracted from one platform's result list.
// The ID is generated at extraction time and is not stable across scrapes;
// cross-platform dedup uses DedupKey instead.
type Posting struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Platform    string `json:"platform"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	PostedAt    string `json:"postedAt,omitempty"`
}

// UnknownCompany is the sentinel used when a platform's markup does not
// expose a company name for a row.
const UnknownCompany = "Unknown"

// DedupKey returns the case-insensitive (title, company) key used to merge
// cross-listed postings. Location is deliberately not part of the key.
func (p Posting) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(p.Title)) + "|" + strings.ToLower(strings.TrimSpace(p.Company))
}

type SearchQuery struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Platform string `json:"platform"`
}

type ApplyRequest struct {
	JobURL     string `json:"jobUrl"`
	ResumePath string `json:"resumePath"`
	Platform   string `json:"platform"`
}

// ApplyResult is the literal contract returned by POST /api/apply. The
// orchestrator never raises; every failure collapses into this shape.
type ApplyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformIndeed    Platform = "indeed"
	PlatformStepStone Platform = "stepstone"
	PlatformXing      Platform = "xing"
	PlatformJobboerse Platform = "jobboerse"
	PlatformAll       Platform = "all"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// ParsePlatform normalizes a user-supplied platform tag. The empty string
// means "all platforms", matching the HTTP contract.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return PlatformAll, nil
	case "linkedin":
		return PlatformLinkedIn, nil
	case "indeed", "indeed de":
		return PlatformIndeed, nil
	case "stepstone":
		return PlatformStepStone, nil
	case "xing":
		return PlatformXing, nil
	case "jobboerse", "jobbörse":
		return PlatformJobboerse, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
}

// Label returns the display name used in Posting.Platform and in
// user-facing messages.
func (p Platform) Label() string {
	switch p {
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformIndeed:
		return "Indeed DE"
	case PlatformStepStone:
		return "StepStone"
	case PlatformXing:
		return "Xing"
	case PlatformJobboerse:
		return "Jobbörse"
	case PlatformAll:
		return "All"
	default:
		return string(p)
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID builds an extraction-time posting ID such as "li-1712345678901-x4k2m9q1z".
func NewID(prefix string) string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), string(b))
}
