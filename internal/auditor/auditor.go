// Package auditor runs the full investigation flow: compliance rules, email
// evidence and screened transactions fused into one evidence bundle for a
// single person. Audits never run without an identified person.
package auditor

import (
	"context"

	"hawkai/internal/domain"
	"hawkai/internal/transactions"
)

// reformulatedPolicyQuery replaces the raw question when searching the
// policy during a person audit: the rules that matter are about spending,
// not about the person.
const reformulatedPolicyQuery = "Regras sobre gastos, reembolsos e fraudes"

// ComplianceSearcher searches the policy corpus.
type ComplianceSearcher interface {
	Search(ctx context.Context, question string) ([]domain.SearchResult, error)
}

// EmailSearcher searches the email corpus with person/period pre-filtering.
type EmailSearcher interface {
	Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error)
}

// Auditor fuses evidence from all three sources.
type Auditor struct {
	compliance ComplianceSearcher
	emails     EmailSearcher
	ledger     []domain.Transaction
}

func New(compliance ComplianceSearcher, emails EmailSearcher, ledger []domain.Transaction) *Auditor {
	return &Auditor{compliance: compliance, emails: emails, ledger: ledger}
}

// Collect gathers the evidence bundle for an audit question. A question with
// no resolvable person fails with MissingEntityError: auditing "someone" is
// not a thing. Empty evidence from any source is a legitimate finding and the
// bundle is still returned.
func (a *Auditor) Collect(ctx context.Context, q domain.Query) (*domain.EvidenceBundle, error) {
	if q.Person == "" {
		return nil, &domain.MissingEntityError{Question: q.RawText}
	}

	compliance, err := a.compliance.Search(ctx, reformulatedPolicyQuery)
	if err != nil {
		return nil, err
	}

	// the person's name drives the email search, not the raw question
	emailQuery := domain.Query{
		RawText: q.Person,
		Intent:  q.Intent,
		Person:  q.Person,
		Period:  q.Period,
	}
	emailHits, err := a.emails.Search(ctx, emailQuery)
	if err != nil {
		return nil, err
	}

	scoped := transactions.Filter(a.ledger, q.Person, q.Period)
	screened := transactions.Screen(scoped)

	return &domain.EvidenceBundle{
		Person:             q.Person,
		Period:             q.Period,
		ComplianceExcerpts: compliance,
		EmailExcerpts:      emailHits,
		Transactions:       screened,
	}, nil
}
