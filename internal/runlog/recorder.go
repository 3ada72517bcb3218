package runlog

// NotifyFunc is invoked after each recorded action, e.g. to push it to
// websocket subscribers. May be nil.
type NotifyFunc func(runID string, a Action)

// Recorder binds a store to one run so call sites log steps without
// carrying the run ID around. Recording is best-effort: a failed write
// never interrupts an apply attempt.
type Recorder struct {
	store  *Store
	runID  string
	notify NotifyFunc
}

func NewRecorder(store *Store, runID string, notify NotifyFunc) *Recorder {
	return &Recorder{store: store, runID: runID, notify: notify}
}

func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.runID
}

func (r *Recorder) Record(actionType, selector, value, result, errMsg string) {
	if r == nil || r.store == nil {
		return
	}
	a, err := r.store.AppendAction(r.runID, Action{
		Type:     actionType,
		Selector: selector,
		Value:    value,
		Result:   result,
		Error:    errMsg,
	})
	if err != nil {
		return
	}
	if r.notify != nil {
		r.notify(r.runID, a)
	}
}

func (r *Recorder) Navigate(url, result, errMsg string) {
	r.Record(ActionNavigate, "", url, result, errMsg)
}

func (r *Recorder) Click(selector, result, errMsg string) {
	r.Record(ActionClick, selector, "", result, errMsg)
}

func (r *Recorder) Wait(selector, result, errMsg string) {
	r.Record(ActionWait, selector, "", result, errMsg)
}

func (r *Recorder) Finish(status string) {
	if r == nil || r.store == nil {
		return
	}
	_ = r.store.SetStatus(r.runID, status)
}
