package details

import (
	"context"
	"sync"
)

// Recorder is a Display that keeps the submissions it receives in memory.
type Recorder struct {
	mu          sync.Mutex
	submissions []Submission
}

// Ensure Recorder implements Display.
var _ Display = (*Recorder)(nil)

// Display implements Display.
func (r *Recorder) Display(_ context.Context, submission Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, Submission{
		Fields: append(submission.Fields[:0:0], submission.Fields...),
		Data:   submission.Data.Clone(),
	})
	return nil
}

// Last returns the most recent submission.
func (r *Recorder) Last() (Submission, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.submissions) == 0 {
		return Submission{}, false
	}
	return r.submissions[len(r.submissions)-1], true
}

// Count returns how many submissions were recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submissions)
}
