// Package router classifies incoming questions into a closed set of intents
// and extracts the person and period they refer to. Classification is keyword
// scoring, not generative: the same question always routes the same way.
package router

import (
	"regexp"
	"strings"
	"time"

	"hawkai/internal/domain"
)

// Keyword stems per intent. Stems are matched as substrings of the lowercased
// question so singular, plural and inflected forms all hit. Accented and
// plain variants are listed separately since matching is byte-wise.
var intentKeywords = map[domain.Intent][]string{
	domain.IntentCompliance: {
		"polític", "politic", "regra", "limite", "compliance",
		"permitido", "proibido", "reembols", "norma", "aprovaç", "aprovac",
	},
	domain.IntentEmails: {
		"email", "e-mail", "mensag", "comunica", "escreveu", "enviou",
		"conversa", "correspond",
	},
	domain.IntentAudit: {
		"audit", "fraude", "suspeit", "investig", "irregular", "cometendo",
		"análise completa", "analise completa",
	},
	domain.IntentTransactions: {
		"transaç", "transac", "gasto", "compra", "comprou", "despesa",
		"pagament", "valor", "extrato",
	},
}

// intentPrecedence breaks score ties. Earlier wins.
var intentPrecedence = []domain.Intent{
	domain.IntentAudit,
	domain.IntentEmails,
	domain.IntentTransactions,
	domain.IntentCompliance,
}

// DefaultRoster is the closed set of employees questions can refer to.
// Person extraction never matches anyone outside the roster.
var DefaultRoster = []string{
	"Michael Scott",
	"Dwight Schrute",
	"Jim Halpert",
	"Pam Beesly",
	"Ryan Howard",
	"Kevin Malone",
	"Angela Martin",
	"Oscar Martinez",
	"Stanley Hudson",
	"Kelly Kapoor",
	"Toby Flenderson",
	"Creed Bratton",
	"Meredith Palmer",
	"Phyllis Vance",
	"Andy Bernard",
}

// Router routes questions. It is stateless apart from the roster and safe for
// concurrent use.
type Router struct {
	roster []string
}

func New(roster []string) *Router {
	if len(roster) == 0 {
		roster = DefaultRoster
	}
	return &Router{roster: roster}
}

// Route classifies the question and extracts person and period. The reference
// time anchors relative expressions such as "mês passado"; the system clock is
// never consulted. An unclassifiable question returns UnknownIntentError.
func (r *Router) Route(question string, ref time.Time) (domain.Query, error) {
	q := domain.Query{
		RawText: question,
		Intent:  Classify(question),
		Person:  r.ExtractPerson(question),
		Period:  ResolvePeriod(question, ref),
	}
	if q.Intent == domain.IntentUnknown {
		return q, &domain.UnknownIntentError{Question: question}
	}
	return q, nil
}

// Classify scores the question against each intent's keyword list and returns
// the highest scorer. Ties fall to the precedence order; zero hits anywhere
// means unknown.
func Classify(question string) domain.Intent {
	text := strings.ToLower(question)
	best := domain.IntentUnknown
	bestScore := 0
	for _, intent := range intentPrecedence {
		score := 0
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}
	return best
}

// ExtractPerson finds the roster member the question mentions. A partial
// mention ("Ryan") resolves to the matching roster entry; the returned string
// is the canonical casing of the parts that actually appeared. When several
// members match, the longest matched mention wins, roster order on ties.
func (r *Router) ExtractPerson(question string) string {
	text := strings.ToLower(question)
	best := ""
	for _, full := range r.roster {
		var matched []string
		for _, part := range strings.Fields(full) {
			if len(part) < 3 {
				continue
			}
			if containsWord(text, strings.ToLower(part)) {
				matched = append(matched, part)
			}
		}
		if len(matched) == 0 {
			continue
		}
		candidate := strings.Join(matched, " ")
		if len(candidate) > len(best) {
			best = candidate
		}
	}
	return best
}

// containsWord reports whether word occurs in text bounded by non-letters.
func containsWord(text, word string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isLetter(text[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(text) || !isLetter(text[afterIdx])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0x80
}

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`)
	monthYearRe = regexp.MustCompile(`\b(janeiro|fevereiro|março|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)(?:\s+de\s+(\d{4}))?\b`)
)

var monthNumber = map[string]time.Month{
	"janeiro": time.January, "fevereiro": time.February,
	"março": time.March, "marco": time.March,
	"abril": time.April, "maio": time.May, "junho": time.June,
	"julho": time.July, "agosto": time.August, "setembro": time.September,
	"outubro": time.October, "novembro": time.November, "dezembro": time.December,
}

// ResolvePeriod extracts a date range from the question, resolved against the
// supplied reference time. Returns nil when the question names no period.
func ResolvePeriod(question string, ref time.Time) *domain.Period {
	text := strings.ToLower(question)

	if strings.Contains(text, "mês passado") || strings.Contains(text, "mes passado") {
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		start := first.AddDate(0, -1, 0)
		return &domain.Period{Start: start, End: first.AddDate(0, 0, -1)}
	}
	if strings.Contains(text, "este mês") || strings.Contains(text, "este mes") ||
		strings.Contains(text, "esse mês") || strings.Contains(text, "esse mes") {
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &domain.Period{Start: start, End: start.AddDate(0, 1, -1)}
	}

	var dates []time.Time
	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		if t, err := time.Parse("2006-01-02", m[0]); err == nil {
			dates = append(dates, t)
		}
	}
	for _, m := range slashDateRe.FindAllStringSubmatch(text, -1) {
		if t, err := time.Parse("02/01/2006", m[0]); err == nil {
			dates = append(dates, t)
		}
	}
	switch {
	case len(dates) == 1:
		return &domain.Period{Start: dates[0], End: dates[0]}
	case len(dates) >= 2:
		a, b := dates[0], dates[1]
		if b.Before(a) {
			a, b = b, a
		}
		return &domain.Period{Start: a, End: b}
	}

	if m := monthYearRe.FindStringSubmatch(text); m != nil {
		year := ref.Year()
		if m[2] != "" {
			if y, err := time.Parse("2006", m[2]); err == nil {
				year = y.Year()
			}
		}
		start := time.Date(year, monthNumber[m[1]], 1, 0, 0, 0, 0, time.UTC)
		return &domain.Period{Start: start, End: start.AddDate(0, 1, -1)}
	}

	return nil
}
