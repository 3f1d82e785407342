package models

// State identifies the phase of the current download job.
type State string

const (
	StateIdle        State = "idle"
	StateStarting    State = "starting"
	StateDownloading State = "downloading"
	StateFinished    State = "finished"
	StateFailed      State = "failed"
)

// FormatBest is the sentinel format_id meaning "pick the best format".
const FormatBest = "best"

// Status: tek global indirme işinin anlık durumu
//
// The zero-valued extra fields are omitted per state, so the wire shape
// matches whichever variant State selects: downloading carries
// percentage/speed/eta/filename, finished carries filename, failed
// carries error.
type Status struct {
	State      State  `json:"status"`
	Percentage string `json:"percentage,omitempty"`
	Speed      string `json:"speed,omitempty"`
	ETA        string `json:"eta,omitempty"`
	Filename   string `json:"filename,omitempty"`
	Error      string `json:"error,omitempty"`
}
