package domain

type QueueState string

const (
	QueueIdle    QueueState = "idle"
	QueueRunning QueueState = "running"
	QueueAborted QueueState = "aborted"
)

// QueueItem is one pending translation: the entry to update and the source
// text captured at enqueue time.
type QueueItem struct {
	EntryID string `json:"entry_id"`
	Text    string `json:"text"`
}

type QueueProgress struct {
	Done       int        `json:"done"`
	Queued     int        `json:"queued"`
	Translated int        `json:"translated"`
	Total      int        `json:"total"`
	State      QueueState `json:"state"`
}
