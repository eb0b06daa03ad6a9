package project

import "time"

// Scaffold text seeded into every new project bible.
const (
	templateConfirmed = `【基本情報】
クライアント名:
業種:
ターゲット:

【決定した方針・コンセプト】
・

【仕様・要件（予算・納期など）】
・
`

	templatePending = `【次回MTGでの確認事項】
・

【解消すべき矛盾・懸念点】
・
`
)

// DefaultProjectID is the key auto-provisioned on a tenant's first visit.
const DefaultProjectID = "Default Project"

// NewTemplateDocument returns a fresh document pre-filled with the bible
// scaffold.
func NewTemplateDocument(projectID string, now time.Time) *Document {
	return &Document{
		ProjectID: projectID,
		Confirmed: templateConfirmed,
		Pending:   templatePending,
		UpdatedAt: now,
	}
}
