package exhibition

import "github.com/brownstreet/backend/internal/domain/catalog"

// EventType discriminates the progress events a sync run streams out.
type EventType string

const (
	// EventStart opens the stream and announces the total item count
	EventStart EventType = "start"
	// EventResult reports the terminal outcome of one item
	EventResult EventType = "result"
	// EventProgress reports the running counters after each item
	EventProgress EventType = "progress"
	// EventComplete closes a finished run with the final counters
	EventComplete EventType = "complete"
	// EventError closes a run that could not proceed
	EventError EventType = "error"
)

// Event is one message on a sync run's progress stream. Fields are populated
// per type; the stream always terminates with complete or error, after which
// the channel is closed.
type Event struct {
	Type        EventType `json:"type"`
	Total       int       `json:"total,omitempty"`
	Processed   int       `json:"processed,omitempty"`
	Succeeded   int       `json:"succeeded,omitempty"`
	Failed      int       `json:"failed,omitempty"`
	Skipped     int       `json:"skipped,omitempty"`
	ProductNo   string    `json:"product_no,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Outcome     string    `json:"outcome,omitempty"`
	Message     string    `json:"message,omitempty"`
	// ElapsedMS is the wall time since the run started. On the complete
	// event it is the total run time.
	ElapsedMS int64 `json:"elapsed_ms,omitempty"`
}

func startEvent(total int) Event {
	return Event{Type: EventStart, Total: total}
}

func resultEvent(attempt *catalog.SyncAttempt, elapsedMS int64) Event {
	e := Event{
		Type:        EventResult,
		ProductNo:   attempt.ProductNo,
		ProductName: attempt.ProductName,
		Outcome:     string(attempt.Outcome),
		Message:     attempt.ErrorMessage,
		ElapsedMS:   elapsedMS,
	}
	if attempt.Skipped {
		e.Message = "already up to date"
	}
	return e
}

func errorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}
