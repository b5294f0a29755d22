package transactions

import (
	"fmt"
	"sort"
	"strings"

	"hawkai/internal/domain"
)

// Approval thresholds from the expense policy. Below categoryCLimit the
// employee acts alone; between the two a manager signs off; above
// categoryBLimit a purchase order approved by the CFO is required.
const (
	categoryCLimit = 50.00
	categoryBLimit = 500.00

	// categoria "Diversos" tolerates only trivial amounts
	miscLimit = 5.00

	// same employee, same day, summed above this means possible splitting
	smurfingThreshold = 500.00
)

type prohibitedItem struct {
	rule   string
	reason string
}

// Keyword screen for items the policy bans outright (Seção 3).
var prohibitedItems = map[string]prohibitedItem{
	"mágica":        {"Seção 3.1", "Kit de mágica/entretenimento proibido"},
	"magica":        {"Seção 3.1", "Kit de mágica/entretenimento proibido"},
	"algemas":       {"Seção 3.1", "Equipamento de entretenimento proibido"},
	"houdini":       {"Seção 3.1", "Equipamento de entretenimento proibido"},
	"karaokê":       {"Seção 3.1", "Equipamento de entretenimento proibido"},
	"karaoke":       {"Seção 3.1", "Equipamento de entretenimento proibido"},
	"helicóptero":   {"Seção 3.1", "Brinquedo não é despesa válida"},
	"brinquedo":     {"Seção 3.1", "Brinquedos não são despesa válida"},
	"arma":          {"Seção 3.2", "Armamento proibido"},
	"airsoft":       {"Seção 3.2", "Armamento proibido"},
	"ninja":         {"Seção 3.2", "Armamento proibido"},
	"nunchaku":      {"Seção 3.2", "Armamento proibido"},
	"armadilha":     {"Seção 3.2", "Armadilhas proibidas"},
	"vigilância":    {"Seção 3.2", "Equipamento de vigilância não autorizado"},
	"binóculo":      {"Seção 3.2", "Equipamento de vigilância"},
	"visão noturna": {"Seção 3.2", "Equipamento tático proibido"},
	"wuphf":         {"Seção 3.3", "Investimento em negócio paralelo"},
	"startup":       {"Seção 3.3", "Investimento em startup pessoal"},
	"vela":          {"Seção 3.3", "Produto de cônjuge/parente - Conflito de interesse"},
	"serenity":      {"Seção 3.3", "Produto de cônjuge - Serenity by Jan"},
	"beterraba":     {"Seção 3.3", "Agroturismo/produtos agrícolas proibidos"},
}

var bannedVenues = []string{"hooters"}

var suspiciousVendors = map[string]string{
	"wcs supplies":   "Fornecedor sem registro - possível fraude",
	"tech solutions": "Possível fachada para despesa pessoal",
	"a. sparkles":    "Despesa veterinária pessoal",
	"sprinkles":      "Despesa veterinária pessoal",
}

// Screen applies every policy rule to the given transactions, including the
// cross-transaction smurfing check. Every input transaction appears exactly
// once in the output, in input order, violations or not.
func Screen(txs []domain.Transaction) []domain.ScreenedTransaction {
	out := make([]domain.ScreenedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = domain.ScreenedTransaction{
			Transaction: tx,
			Violations:  screenOne(tx),
		}
	}
	applySmurfing(out)
	return out
}

func screenOne(tx domain.Transaction) []domain.Violation {
	var v []domain.Violation
	desc := strings.ToLower(tx.Description)

	if tx.Amount > categoryBLimit && !strings.Contains(strings.ToLower(tx.Role), "gerente") {
		v = append(v, domain.Violation{
			Kind: "limite_excedido",
			Rule: "Seção 1.3",
			Description: fmt.Sprintf("Valor $%.2f excede limite de $%.2f. Requer Pedido de Compra aprovado pelo CFO.",
				tx.Amount, categoryBLimit),
			Severity: "alta",
		})
	}

	for _, keyword := range sortedKeys(prohibitedItems) {
		if item := prohibitedItems[keyword]; strings.Contains(desc, keyword) {
			severity := "media"
			if strings.Contains(item.rule, "3.3") {
				severity = "alta"
			}
			v = append(v, domain.Violation{
				Kind:        "item_proibido",
				Rule:        item.rule,
				Description: fmt.Sprintf("%s. Descrição: %q", item.reason, tx.Description),
				Severity:    severity,
			})
		}
	}

	for _, venue := range bannedVenues {
		if strings.Contains(desc, venue) {
			v = append(v, domain.Violation{
				Kind:        "local_banido",
				Rule:        "Seção 2.1",
				Description: fmt.Sprintf("Restaurante %q está na lista de locais banidos.", venue),
				Severity:    "media",
			})
		}
	}

	for _, vendor := range sortedKeys(suspiciousVendors) {
		if reason := suspiciousVendors[vendor]; strings.Contains(desc, vendor) {
			v = append(v, domain.Violation{
				Kind:        "fornecedor_suspeito",
				Rule:        "Seção 3.3",
				Description: fmt.Sprintf("%s. Fornecedor: %q", reason, vendor),
				Severity:    "alta",
			})
		}
	}

	if strings.EqualFold(tx.Category, "diversos") && tx.Amount > miscLimit {
		v = append(v, domain.Violation{
			Kind:        "categoria_invalida",
			Rule:        "Seção 2",
			Description: fmt.Sprintf("Categoria 'Diversos' não é aceitável para valores acima de $%.2f. Valor: $%.2f", miscLimit, tx.Amount),
			Severity:    "baixa",
		})
	}
	return v
}

// sortedKeys keeps violation ordering stable: screening the same ledger
// twice must produce byte-identical findings.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type dayKey struct {
	employee string
	date     string
}

// applySmurfing flags groups of same-employee same-day transactions whose
// combined value crosses the approval threshold, the classic way to dodge a
// purchase order.
func applySmurfing(screened []domain.ScreenedTransaction) {
	type group struct {
		idxs  []int
		total float64
	}
	groups := make(map[dayKey]*group)
	for i, st := range screened {
		key := dayKey{
			employee: strings.ToLower(st.Transaction.Employee),
			date:     st.Transaction.Date.Format("2006-01-02"),
		}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.idxs = append(g.idxs, i)
		g.total += st.Transaction.Amount
	}
	for _, g := range groups {
		if len(g.idxs) <= 1 || g.total <= smurfingThreshold {
			continue
		}
		for _, i := range g.idxs {
			screened[i].Violations = append(screened[i].Violations, domain.Violation{
				Kind: "smurfing",
				Rule: "Seção 1.3",
				Description: fmt.Sprintf("Possível divisão de transações. Total no dia: $%.2f. Número de transações: %d",
					g.total, len(g.idxs)),
				Severity: "critica",
			})
		}
	}
}
