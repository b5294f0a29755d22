package domain

import "time"

// Intent is the closed set of routes a question can take.
type Intent string

const (
	IntentCompliance   Intent = "compliance"
	IntentEmails       Intent = "emails"
	IntentAudit        Intent = "audit"
	IntentTransactions Intent = "transactions"
	IntentUnknown      Intent = "unknown"
)

// Period is a closed date range. Both bounds are inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period (date granularity).
func (p Period) Contains(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(truncateToDay(p.Start)) && !day.After(truncateToDay(p.End))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ChunkMeta carries source metadata for chunks built from structured records.
// It is zero for chunks cut from plain documents such as the policy text.
type ChunkMeta struct {
	Sender    string    `json:"sender,omitempty"`
	Recipient string    `json:"recipient,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Date      time.Time `json:"date,omitempty"`
}

// Chunk is a bounded-size retrievable unit of text. Chunks are created during
// indexing and immutable afterwards; reindexing a corpus replaces them all.
type Chunk struct {
	ID        int       `json:"id"`
	SourceID  string    `json:"source_id"`
	Text      string    `json:"text"`
	Offset    int       `json:"offset"`
	Embedding []float64 `json:"embedding,omitempty"`
	Meta      ChunkMeta `json:"meta,omitempty"`
}

// Query is the routed form of an incoming question. Produced once by the
// router and immutable after creation.
type Query struct {
	RawText string
	Intent  Intent
	Person  string // empty when no roster member was mentioned
	Period  *Period
}

// SearchResult is a matching chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Transaction is one row of the bank ledger, consumed read-only.
type Transaction struct {
	ID          string
	Date        time.Time
	Employee    string
	Role        string
	Description string
	Amount      float64
	Category    string
	Department  string
}

// Violation is a rule-screening finding attached to a transaction.
type Violation struct {
	Kind        string
	Rule        string
	Description string
	Severity    string
}

// ScreenedTransaction pairs a transaction with the violations the rule
// screening found for it.
type ScreenedTransaction struct {
	Transaction Transaction
	Violations  []Violation
}

// Email is one parsed message from the email archive.
type Email struct {
	From    string
	To      string
	Date    time.Time
	Subject string
	Body    string
	Offset  int
}

// EvidenceBundle is the fused evidence for one audit question. Every included
// item is scoped to Person and, when set, Period. Built fresh per question.
type EvidenceBundle struct {
	Person             string
	Period             *Period
	ComplianceExcerpts []SearchResult
	EmailExcerpts      []SearchResult
	Transactions       []ScreenedTransaction
}
