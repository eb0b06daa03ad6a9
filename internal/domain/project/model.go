package project

import "time"

// Document is the unit of persisted state for one project: the scalar
// bible fields plus the nested history collections.
type Document struct {
	ProjectID      string    `json:"project_id"`
	Confirmed      string    `json:"confirmed"`
	Pending        string    `json:"pending"`
	Strategy       string    `json:"strategy"`
	DirectorMemo   string    `json:"director_memo"`
	FullTranscript string    `json:"full_transcript"`
	UpdatedAt      time.Time `json:"updated_at"`

	// MeetingHistory is ordered newest first.
	MeetingHistory []MeetingEntry `json:"meeting_history,omitempty"`
	ChatHistory    []ChatMessage  `json:"chat_history,omitempty"`
	ChatContext    []ChatMessage  `json:"chat_context,omitempty"`

	// Extra carries column values this build doesn't model, so documents
	// written by a newer schema generation survive a read-modify-write.
	Extra map[string]string `json:"extra,omitempty"`
}

// MeetingEntry is one captured meeting note.
type MeetingEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// ChatMessage is one turn of the free-form chat.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Field names a scalar document field addressable by UpdateField.
type Field string

const (
	FieldConfirmed  Field = "confirmed"
	FieldPending    Field = "pending"
	FieldStrategy   Field = "strategy"
	FieldMemo       Field = "memo"
	FieldTranscript Field = "transcript"
)

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.MeetingHistory = append([]MeetingEntry(nil), d.MeetingHistory...)
	out.ChatHistory = append([]ChatMessage(nil), d.ChatHistory...)
	out.ChatContext = append([]ChatMessage(nil), d.ChatContext...)
	if d.Extra != nil {
		out.Extra = make(map[string]string, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}
