package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"jobwerk/internal/runlog"
)

type RunActionEvent struct {
	Type      string        `json:"type"`
	RunID     string        `json:"runId"`
	Action    runlog.Action `json:"action"`
	Timestamp string        `json:"timestamp"`
}

type JobsDiscoveredEvent struct {
	Type      string `json:"type"`
	Keyword   string `json:"keyword"`
	Location  string `json:"location"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyRunAction matches runlog.NotifyFunc so the recorder can stream
// apply steps as they happen.
func NotifyRunAction(runID string, a runlog.Action) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := RunActionEvent{
		Type:      "run_action",
		RunID:     runID,
		Action:    a,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyJobsDiscovered(keyword, location string, count int) {
	h := defaultHub.Load()
	if h == nil || count == 0 {
		return
	}

	evt := JobsDiscoveredEvent{
		Type:      "jobs_discovered",
		Keyword:   keyword,
		Location:  location,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
