package router

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hawkai/internal/domain"
)

var ref = time.Date(2025, time.May, 15, 12, 30, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     domain.Intent
	}{
		{"Qual o limite de gastos sem aprovação?", domain.IntentCompliance},
		{"O que diz a política sobre reembolsos?", domain.IntentCompliance},
		{"O Ryan está cometendo fraude?", domain.IntentAudit},
		{"Faça uma auditoria dos gastos do Kevin", domain.IntentAudit},
		{"Analise os emails do Dwight", domain.IntentEmails},
		{"O que o Michael escreveu para a Jan?", domain.IntentEmails},
		{"Quais foram as compras do Stanley?", domain.IntentTransactions},
		{"Mostre o extrato de transações de abril", domain.IntentTransactions},
		{"Qual a capital da Austrália?", domain.IntentUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.question), "question: %s", tc.question)
	}
}

func TestClassifyTieFallsToPrecedence(t *testing.T) {
	// one audit keyword and one email keyword: audit outranks emails
	assert.Equal(t, domain.IntentAudit, Classify("Há fraude nos emails?"))
}

func TestRouteUnknownIntent(t *testing.T) {
	r := New(nil)
	q, err := r.Route("Qual a capital da Austrália?", ref)
	assert.Equal(t, domain.IntentUnknown, q.Intent)
	var unknownErr *domain.UnknownIntentError
	require.ErrorAs(t, err, &unknownErr)
	assert.Contains(t, unknownErr.Question, "Austrália")
}

func TestRouteCarriesRawText(t *testing.T) {
	r := New(nil)
	q, err := r.Route("O Ryan está cometendo fraude?", ref)
	require.NoError(t, err)
	assert.Equal(t, "O Ryan está cometendo fraude?", q.RawText)
	assert.Equal(t, domain.IntentAudit, q.Intent)
	assert.Equal(t, "Ryan", q.Person)
}

func TestExtractPerson(t *testing.T) {
	r := New(nil)
	cases := []struct {
		question string
		want     string
	}{
		{"O Ryan está cometendo fraude?", "Ryan"},
		{"Analise os emails do Dwight", "Dwight"},
		{"O que o Michael Scott comprou?", "Michael Scott"},
		{"Os gastos do Scott estão corretos?", "Scott"},
		{"quais as despesas da angela?", "Angela"},
		{"Qual o limite de gastos?", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.ExtractPerson(tc.question), "question: %s", tc.question)
	}
}

func TestExtractPersonRespectsWordBoundaries(t *testing.T) {
	r := New(nil)
	// "Ryan" must not match inside another word
	assert.Empty(t, r.ExtractPerson("O projeto Ryanodine foi aprovado?"))
}

func TestExtractPersonCustomRoster(t *testing.T) {
	r := New([]string{"Holly Flax"})
	assert.Equal(t, "Holly", r.ExtractPerson("emails da Holly"))
	assert.Empty(t, r.ExtractPerson("emails do Michael"))
}

func TestResolvePeriodRelative(t *testing.T) {
	p := ResolvePeriod("Gastos do Kevin no mês passado", ref)
	require.NotNil(t, p)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), p.End)

	p = ResolvePeriod("Gastos do Kevin este mês", ref)
	require.NotNil(t, p)
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), p.End)
}

func TestResolvePeriodISODates(t *testing.T) {
	p := ResolvePeriod("Transações em 2025-03-10", ref)
	require.NotNil(t, p)
	assert.Equal(t, p.Start, p.End)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), p.Start)

	p = ResolvePeriod("Transações entre 2025-03-20 e 2025-03-05", ref)
	require.NotNil(t, p)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), p.End)
}

func TestResolvePeriodSlashDates(t *testing.T) {
	p := ResolvePeriod("Compras em 07/04/2025", ref)
	require.NotNil(t, p)
	assert.Equal(t, time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, p.Start, p.End)
}

func TestResolvePeriodMonthName(t *testing.T) {
	p := ResolvePeriod("O que o Jim gastou em março?", ref)
	require.NotNil(t, p)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), p.End)

	p = ResolvePeriod("despesas de fevereiro de 2024", ref)
	require.NotNil(t, p)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), p.End)
}

func TestResolvePeriodNone(t *testing.T) {
	assert.Nil(t, ResolvePeriod("Qual o limite de gastos?", ref))
}

func TestPeriodContainsDateGranularity(t *testing.T) {
	p := ResolvePeriod("gastos em 2025-03-10", ref)
	require.NotNil(t, p)
	assert.True(t, p.Contains(time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)))
}
