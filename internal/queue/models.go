package queue

import "time"

// Status represents the lifecycle of a queue item. Each processing status
// has a matching "done" status so a restart can tell an interrupted stage
// from a finished one.
type Status string

const (
	StatusPending      Status = "pending"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusMerging      Status = "merging"
	StatusMerged       Status = "merged"
	StatusTranslating  Status = "translating"
	StatusTranslated   Status = "translated"
	StatusAligning     Status = "aligning"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusTranscribing,
	StatusTranscribed,
	StatusMerging,
	StatusMerged,
	StatusTranslating,
	StatusTranslated,
	StatusAligning,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// processingStatuses are the in-flight states. Items found in one of these
// at startup were interrupted and roll back to the preceding done state.
var processingStatuses = map[Status]Status{
	StatusTranscribing: StatusPending,
	StatusMerging:      StatusTranscribed,
	StatusTranslating:  StatusMerged,
	StatusAligning:     StatusTranslated,
}

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Processing reports whether the status marks in-flight work.
func (s Status) Processing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// Item is one media file moving through the subtitle pipeline.
type Item struct {
	ID              int64
	SourcePath      string
	Title           string
	Status          Status
	ErrorMessage    string
	ProgressStage   string
	ProgressMessage string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SetFailed marks the item failed with an operator-facing message.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
}
