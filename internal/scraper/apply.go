package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"

	"jobwerk/internal/jobs"
	"jobwerk/internal/logging"
	"jobwerk/internal/runlog"
)

// pageProvider abstracts browser.Session for the apply flow so tests can
// run it without a Chrome process.
type pageProvider interface {
	NewPage(ctx context.Context) (context.Context, context.CancelFunc, error)
}

// applyFunc drives one platform's application dialog on an already-open page.
type applyFunc func(page context.Context, rec *runlog.Recorder, resumePath string) (string, error)

// navigateFunc opens the posting URL in the given page.
type navigateFunc func(page context.Context, url string) error

type ApplyOrchestrator struct {
	pages    pageProvider
	runs     *runlog.Store
	notify   runlog.NotifyFunc
	navigate navigateFunc
	routines map[jobs.Platform]applyFunc
	log      *logging.Logger
}

func NewApplyOrchestrator(pages pageProvider, runs *runlog.Store, notify runlog.NotifyFunc, log *logging.Logger) *ApplyOrchestrator {
	if log == nil {
		log = logging.Nop()
	}
	return &ApplyOrchestrator{
		pages:    pages,
		runs:     runs,
		notify:   notify,
		navigate: navigatePage,
		routines: map[jobs.Platform]applyFunc{
			jobs.PlatformLinkedIn: applyLinkedIn,
			jobs.PlatformIndeed:   applyIndeed,
		},
		log: log,
	}
}

// Apply runs one application attempt end to end. Unsupported platforms and
// automation failures both come back as a non-error ApplyResult with
// Success=false; an error return means the request itself was unusable.
// Every attempt gets its own run record regardless of outcome.
func (a *ApplyOrchestrator) Apply(ctx context.Context, req jobs.ApplyRequest) (jobs.ApplyResult, error) {
	platform, err := jobs.ParsePlatform(req.Platform)
	if err != nil {
		return jobs.ApplyResult{}, err
	}
	if platform == jobs.PlatformAll {
		return jobs.ApplyResult{}, fmt.Errorf("%w: apply needs a single platform", jobs.ErrUnknownPlatform)
	}

	run, err := a.runs.Create("", "", string(platform), req.JobURL)
	if err != nil {
		return jobs.ApplyResult{}, fmt.Errorf("create run: %w", err)
	}
	rec := runlog.NewRecorder(a.runs, run.ID, a.notify)

	message, applyErr := a.attempt(ctx, rec, platform, req)
	if errors.Is(applyErr, errUnsupportedPlatform) {
		rec.Finish("failed")
		return jobs.ApplyResult{
			Success: false,
			Message: "Auto-apply not supported for " + platform.Label(),
		}, nil
	}
	if applyErr != nil {
		a.log.Warn("application attempt failed", "run", run.ID, "platform", platform.Label(), "error", applyErr)
		rec.Finish("failed")
		return jobs.ApplyResult{Success: false, Message: applyErr.Error()}, nil
	}

	rec.Finish("succeeded")
	a.log.Info("application submitted", "run", run.ID, "platform", platform.Label(), "url", req.JobURL)
	return jobs.ApplyResult{Success: true, Message: message}, nil
}

// errUnsupportedPlatform marks an attempt that loaded the page but has no
// routine for the platform. The page is always opened first, so a broken
// URL surfaces as a navigation failure regardless of platform support.
var errUnsupportedPlatform = errors.New("no apply routine for platform")

// attempt isolates the browser work so a panic inside chromedp actions or
// a buggy routine degrades to a failed result instead of killing the server.
// The capitalized "Application failed: ..." strings are not internal errors:
// they surface verbatim as ApplyResult.Message, and front ends match on
// that exact prefix.
func (a *ApplyOrchestrator) attempt(ctx context.Context, rec *runlog.Recorder, platform jobs.Platform, req jobs.ApplyRequest) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Application failed: %v", r)
		}
	}()

	page, cancel, err := a.pages.NewPage(ctx)
	if err != nil {
		return "", fmt.Errorf("Application failed: %v", err)
	}
	defer cancel()

	if err := a.navigate(page, req.JobURL); err != nil {
		rec.Navigate(req.JobURL, runlog.ResultFailed, err.Error())
		return "", fmt.Errorf("Application failed: %v", err)
	}
	rec.Navigate(req.JobURL, runlog.ResultSuccess, "")

	routine, ok := a.routines[platform]
	if !ok {
		return "", errUnsupportedPlatform
	}

	message, err = routine(page, rec, req.ResumePath)
	if err != nil {
		return "", fmt.Errorf("Application failed: %v", err)
	}
	return message, nil
}

func navigatePage(page context.Context, url string) error {
	ctx, cancel := context.WithTimeout(page, navigateTimeout)
	defer cancel()
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}
