// Package service orchestrates the question-answering flows: routing,
// evidence gathering per intent and final synthesis through the generative
// model. It owns all prompt text and all fixed no-evidence answers.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hawkai/internal/domain"
	"hawkai/internal/logger"
	"hawkai/internal/router"
	"hawkai/internal/transactions"
)

// ComplianceSearcher searches the policy corpus.
type ComplianceSearcher interface {
	Search(ctx context.Context, question string) ([]domain.SearchResult, error)
}

// EmailSearcher searches the email corpus with person/period pre-filtering.
type EmailSearcher interface {
	Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error)
}

// EvidenceCollector assembles the audit evidence bundle.
type EvidenceCollector interface {
	Collect(ctx context.Context, q domain.Query) (*domain.EvidenceBundle, error)
}

// Answer is the final result of one question.
type Answer struct {
	Question string
	Intent   domain.Intent
	Person   string
	Period   *domain.Period
	Text     string
}

// Service wires the router, the per-intent evidence sources and the
// generative model into one Ask entry point.
type Service struct {
	router     *router.Router
	compliance ComplianceSearcher
	emails     EmailSearcher
	collector  EvidenceCollector
	ledger     []domain.Transaction
	generator  domain.Generator
}

func New(r *router.Router, compliance ComplianceSearcher, emails EmailSearcher, collector EvidenceCollector, ledger []domain.Transaction, generator domain.Generator) *Service {
	return &Service{
		router:     r,
		compliance: compliance,
		emails:     emails,
		collector:  collector,
		ledger:     ledger,
		generator:  generator,
	}
}

// Ask answers one question. The reference time anchors relative period
// expressions; pass the current wall clock in production and a fixed time in
// tests. Routing failures (unknown intent, missing person on an audit) come
// back as their typed errors for the caller to phrase a clarification.
func (s *Service) Ask(ctx context.Context, question string, ref time.Time) (Answer, error) {
	q, err := s.router.Route(question, ref)
	if err != nil {
		return Answer{}, err
	}
	logger.Debug("routed question: intent=%s person=%q period=%v", q.Intent, q.Person, q.Period)

	ans := Answer{Question: question, Intent: q.Intent, Person: q.Person, Period: q.Period}

	var text string
	switch q.Intent {
	case domain.IntentCompliance:
		text, err = s.answerCompliance(ctx, q)
	case domain.IntentEmails:
		text, err = s.answerEmails(ctx, q)
	case domain.IntentTransactions:
		text, err = s.answerTransactions(ctx, q)
	case domain.IntentAudit:
		text, err = s.answerAudit(ctx, q)
	default:
		return Answer{}, &domain.UnknownIntentError{Question: question}
	}
	if err != nil {
		return Answer{}, err
	}
	ans.Text = text
	return ans, nil
}

func (s *Service) answerCompliance(ctx context.Context, q domain.Query) (string, error) {
	hits, err := s.compliance.Search(ctx, q.RawText)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return noPolicyAnswer, nil
	}
	texts := make([]string, 0, len(hits))
	for _, r := range hits {
		texts = append(texts, r.Chunk.Text)
	}
	user := fmt.Sprintf("CONTEXTO DA POLITICA:\n%s\n\nPERGUNTA: %s\n\nRESPOSTA:",
		strings.Join(texts, "\n\n---\n\n"), q.RawText)
	return s.generator.Generate(ctx, compliancePrompt, user)
}

func (s *Service) answerEmails(ctx context.Context, q domain.Query) (string, error) {
	hits, err := s.emails.Search(ctx, q)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return noEmailsAnswer, nil
	}
	user := fmt.Sprintf("EMAILS:\n%s\n\nPERGUNTA: %s\n\nANALISE:",
		FormatEmailResults(hits, maxEmailsInContext), q.RawText)
	return s.generator.Generate(ctx, emailAnalystPrompt, user)
}

func (s *Service) answerTransactions(ctx context.Context, q domain.Query) (string, error) {
	scoped := transactions.Filter(s.ledger, q.Person, q.Period)
	if len(scoped) == 0 {
		return noTransactionsAnswer, nil
	}
	screened := transactions.Screen(scoped)
	user := fmt.Sprintf("TRANSACOES:\n%s\n\nPERGUNTA: %s\n\nANALISE:",
		FormatTransactions(screened, maxTxsInContext), q.RawText)
	return s.generator.Generate(ctx, transactionAuditorPrompt, user)
}

func (s *Service) answerAudit(ctx context.Context, q domain.Query) (string, error) {
	bundle, err := s.collector.Collect(ctx, q)
	if err != nil {
		return "", err
	}
	evidence := FormatBundle(bundle)
	if evidence == "" {
		return noEvidenceAnswer, nil
	}
	user := fmt.Sprintf("PERGUNTA DO INVESTIGADOR: %s\n\nDADOS COLETADOS sobre %s:\n\n%s\n\nANALISE:",
		q.RawText, bundle.Person, evidence)
	return s.generator.Generate(ctx, forensicAuditorPrompt, user)
}
