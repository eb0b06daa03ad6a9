package store

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/okabe-h/gridstore/internal/domain/project"
)

// Column names of the project table. The set grows over schema
// generations; Schema.Ensure migrates older tables forward.
const (
	ColProjectID  = "project_id"
	ColConfirmed  = "confirmed"
	ColPending    = "pending"
	ColMemo       = "memo"
	ColTranscript = "transcript"
	ColBlob       = "blob"
	ColUpdatedAt  = "updated_at"
	ColStrategy   = "strategy"
)

// Columns is the current required column set, in table order.
var Columns = []string{
	ColProjectID,
	ColConfirmed,
	ColPending,
	ColMemo,
	ColTranscript,
	ColBlob,
	ColUpdatedAt,
	ColStrategy,
}

// historyBlob packs every variable-length collection of a document into
// the single blob column.
type historyBlob struct {
	MeetingHistory []project.MeetingEntry `json:"meeting_history,omitempty"`
	ChatHistory    []project.ChatMessage  `json:"chat_history,omitempty"`
	ChatContext    []project.ChatMessage  `json:"chat_context,omitempty"`
}

// Codec converts between a document and its flat row representation.
// Mapping is by column name against the table's header, so rows survive
// header reordering and widening.
type Codec struct {
	logger *slog.Logger
}

// NewCodec creates a row codec.
func NewCodec(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{logger: logger}
}

// Encode maps a document onto the given header. Unknown header columns
// take their value from the document's Extra map, empty if absent.
func (c *Codec) Encode(doc *project.Document, header []string) ([]string, error) {
	blob := ""
	if len(doc.MeetingHistory) > 0 || len(doc.ChatHistory) > 0 || len(doc.ChatContext) > 0 {
		data, err := json.Marshal(historyBlob{
			MeetingHistory: doc.MeetingHistory,
			ChatHistory:    doc.ChatHistory,
			ChatContext:    doc.ChatContext,
		})
		if err != nil {
			return nil, err
		}
		blob = string(data)
	}

	updatedAt := ""
	if !doc.UpdatedAt.IsZero() {
		updatedAt = doc.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	row := make([]string, len(header))
	for i, col := range header {
		switch col {
		case ColProjectID:
			row[i] = doc.ProjectID
		case ColConfirmed:
			row[i] = doc.Confirmed
		case ColPending:
			row[i] = doc.Pending
		case ColMemo:
			row[i] = doc.DirectorMemo
		case ColTranscript:
			row[i] = doc.FullTranscript
		case ColBlob:
			row[i] = blob
		case ColUpdatedAt:
			row[i] = updatedAt
		case ColStrategy:
			row[i] = doc.Strategy
		default:
			row[i] = doc.Extra[col]
		}
	}
	return row, nil
}

// Decode is the inverse mapping. A missing or unparsable blob column
// yields empty collections with a warning; scalar fields always load.
func (c *Codec) Decode(header, row []string) *project.Document {
	doc := &project.Document{}
	for i, col := range header {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		switch col {
		case ColProjectID:
			doc.ProjectID = value
		case ColConfirmed:
			doc.Confirmed = value
		case ColPending:
			doc.Pending = value
		case ColMemo:
			doc.DirectorMemo = value
		case ColTranscript:
			doc.FullTranscript = value
		case ColBlob:
			c.decodeBlob(doc, value)
		case ColUpdatedAt:
			if value != "" {
				if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
					doc.UpdatedAt = ts
				} else {
					c.logger.Warn("unparsable updated_at, keeping zero", "value", value)
				}
			}
		case ColStrategy:
			doc.Strategy = value
		default:
			if value != "" {
				if doc.Extra == nil {
					doc.Extra = make(map[string]string)
				}
				doc.Extra[col] = value
			}
		}
	}
	return doc
}

func (c *Codec) decodeBlob(doc *project.Document, value string) {
	if value == "" {
		return
	}
	var blob historyBlob
	if err := json.Unmarshal([]byte(value), &blob); err != nil {
		c.logger.Warn("history blob failed to parse, loading empty collections",
			"project", doc.ProjectID, "error", ErrMalformedBlob)
		return
	}
	doc.MeetingHistory = blob.MeetingHistory
	doc.ChatHistory = blob.ChatHistory
	doc.ChatContext = blob.ChatContext
}
