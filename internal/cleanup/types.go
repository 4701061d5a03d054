package cleanup

// MotionTaskIDProperty is the Notion rich_text property holding the linked
// Motion task id.
const MotionTaskIDProperty = "Motion Task ID"

const SnippetLength = 100

// ClearTask is one Notion page whose Motion Task ID points at a Motion task
// that no longer exists.
type ClearTask struct {
	RecordID         string
	DisplayName      string
	StaleReferenceID string
}

type Outcome string

const (
	OutcomeCleared Outcome = "cleared"
	OutcomeFailed  Outcome = "failed"
	OutcomeError   Outcome = "error"
)

type Result struct {
	Task       ClearTask
	Outcome    Outcome
	StatusCode int
	Snippet    string
	Err        error
}

type Summary struct {
	Cleared int
	Total   int
	Results []Result
}
