package service

import (
	"fmt"
	"strings"

	"hawkai/internal/domain"
)

// Context size limits fed to the generative model. Evidence beyond a limit is
// summarized as a count so the model knows it exists.
const (
	maxPolicyExcerpts   = 2
	maxEmailsInContext  = 10
	maxTxsInContext     = 25
	maxEmailBodyInRunes = 300
)

// FormatEmailResults renders ranked email hits for the model context. Output
// is fully determined by the input ordering.
func FormatEmailResults(results []domain.SearchResult, limit int) string {
	if len(results) == 0 {
		return "Nenhum email encontrado."
	}
	var b strings.Builder
	shown := results
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		b.WriteString("--- EMAIL ---\n")
		fmt.Fprintf(&b, "De: %s\n", r.Chunk.Meta.Sender)
		fmt.Fprintf(&b, "Para: %s\n", r.Chunk.Meta.Recipient)
		if !r.Chunk.Meta.Date.IsZero() {
			fmt.Fprintf(&b, "Data: %s\n", r.Chunk.Meta.Date.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "Assunto: %s\n", r.Chunk.Meta.Subject)
		fmt.Fprintf(&b, "Mensagem: %s\n\n", truncateRunes(r.Chunk.Text, maxEmailBodyInRunes))
	}
	if len(results) > limit {
		fmt.Fprintf(&b, "... e mais %d emails\n", len(results)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTransactions renders screened transactions with their findings and a
// closing total over the whole scope, not just the displayed slice.
func FormatTransactions(screened []domain.ScreenedTransaction, limit int) string {
	if len(screened) == 0 {
		return "Nenhuma transacao encontrada."
	}
	var b strings.Builder
	total := 0.0
	for _, st := range screened {
		total += st.Transaction.Amount
	}
	shown := screened
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, st := range shown {
		tx := st.Transaction
		fmt.Fprintf(&b, "- %s | %s | %s | $%.2f | %s\n",
			tx.Date.Format("2006-01-02"), tx.Employee, tx.Description, tx.Amount, tx.Category)
		for _, v := range st.Violations {
			fmt.Fprintf(&b, "  VIOLACAO [%s] %s: %s\n", v.Severity, v.Rule, v.Description)
		}
	}
	if len(screened) > limit {
		fmt.Fprintf(&b, "... e mais %d transacoes\n", len(screened)-limit)
	}
	fmt.Fprintf(&b, "\nTOTAL: $%.2f em %d transacoes", total, len(screened))
	return b.String()
}

// FormatBundle renders the complete audit evidence for the model context.
// Empty sections are omitted entirely.
func FormatBundle(bundle *domain.EvidenceBundle) string {
	var parts []string

	if len(bundle.ComplianceExcerpts) > 0 {
		excerpts := bundle.ComplianceExcerpts
		if len(excerpts) > maxPolicyExcerpts {
			excerpts = excerpts[:maxPolicyExcerpts]
		}
		texts := make([]string, 0, len(excerpts))
		for _, r := range excerpts {
			texts = append(texts, r.Chunk.Text)
		}
		parts = append(parts, "=== REGRAS DE COMPLIANCE ===\n"+strings.Join(texts, "\n---\n"))
	}
	if len(bundle.EmailExcerpts) > 0 {
		parts = append(parts, "=== EMAILS ENCONTRADOS ===\n"+FormatEmailResults(bundle.EmailExcerpts, maxEmailsInContext))
	}
	if len(bundle.Transactions) > 0 {
		parts = append(parts, "=== TRANSACOES ===\n"+FormatTransactions(bundle.Transactions, maxTxsInContext))
	}
	return strings.Join(parts, "\n\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
