package transactions

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hawkai/internal/domain"
)

const sampleCSV = `id_transacao,data,funcionario,cargo,descricao,valor,categoria,departamento
TX001,2025-03-10,Michael Scott,Gerente Regional,Jantar no Chili's,85.50,Alimentação,Vendas
TX002,2025-03-11,Dwight Schrute,Vendedor,Kit de vigilância noturna,320.00,Equipamento,Vendas
TX003,2025-03-12,Kevin Malone,Contador,Compra diversa,47.30,Diversos,Contabilidade
TX004,2025-04-02,Ryan Howard,Temporário,Investimento WUPHF.com,650.00,Tecnologia,Vendas
TX005,2025-04-02,Ryan Howard,Temporário,Servidores para startup,300.00,Tecnologia,Vendas
TX006,2025-04-02,Ryan Howard,Temporário,Marketing digital,280.00,Tecnologia,Vendas
TX007,2025-03-15,Michael Scott,Gerente Regional,Almoço no Hooters,62.00,Alimentação,Vendas
`

func mustParse(t *testing.T) []domain.Transaction {
	t.Helper()
	txs, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, txs, 7)
	return txs
}

func TestParseCSV(t *testing.T) {
	txs := mustParse(t)

	first := txs[0]
	assert.Equal(t, "TX001", first.ID)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Michael Scott", first.Employee)
	assert.Equal(t, "Gerente Regional", first.Role)
	assert.Equal(t, 85.50, first.Amount)
	assert.Equal(t, "Alimentação", first.Category)
}

func TestParseCSVReorderedColumns(t *testing.T) {
	csv := "valor,id_transacao,funcionario,data,cargo,descricao,categoria,departamento\n" +
		"10.00,TX900,Pam Beesly,2025-01-05,Recepcionista,Material de escritório,Escritório,Administração\n"
	txs, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "TX900", txs[0].ID)
	assert.Equal(t, 10.00, txs[0].Amount)
}

func TestParseCSVMissingColumn(t *testing.T) {
	csv := "id_transacao,data,funcionario\nTX1,2025-01-01,Jim Halpert\n"
	_, err := ParseCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cargo")
}

func TestParseCSVBadDate(t *testing.T) {
	csv := "id_transacao,data,funcionario,cargo,descricao,valor,categoria,departamento\n" +
		"TX1,10/03/2025,Jim Halpert,Vendedor,Papel,10.00,Escritório,Vendas\n"
	_, err := ParseCSV(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestFilterByPerson(t *testing.T) {
	txs := mustParse(t)
	got := Filter(txs, "Ryan", nil)
	require.Len(t, got, 3)
	for _, tx := range got {
		assert.Equal(t, "Ryan Howard", tx.Employee)
	}
	assert.Empty(t, Filter(txs, "Toby", nil))
}

func TestFilterByPeriod(t *testing.T) {
	txs := mustParse(t)
	march := &domain.Period{
		Start: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Len(t, Filter(txs, "", march), 4)
	assert.Len(t, Filter(txs, "Michael", march), 2)
	assert.Empty(t, Filter(txs, "Ryan", march))
}

func findByID(screened []domain.ScreenedTransaction, id string) domain.ScreenedTransaction {
	for _, st := range screened {
		if st.Transaction.ID == id {
			return st
		}
	}
	return domain.ScreenedTransaction{}
}

func hasViolation(st domain.ScreenedTransaction, kind string) bool {
	for _, v := range st.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func TestScreenKeepsInputOrder(t *testing.T) {
	txs := mustParse(t)
	screened := Screen(txs)
	require.Len(t, screened, len(txs))
	for i := range txs {
		assert.Equal(t, txs[i].ID, screened[i].Transaction.ID)
	}
}

func TestScreenCleanTransaction(t *testing.T) {
	screened := Screen(mustParse(t))
	assert.Empty(t, findByID(screened, "TX001").Violations, "approved venue under limit is clean")
}

func TestScreenProhibitedItem(t *testing.T) {
	screened := Screen(mustParse(t))
	st := findByID(screened, "TX002")
	require.True(t, hasViolation(st, "item_proibido"))
	assert.Equal(t, "Seção 3.2", st.Violations[0].Rule)
	assert.Equal(t, "media", st.Violations[0].Severity)
}

func TestScreenBannedVenue(t *testing.T) {
	screened := Screen(mustParse(t))
	assert.True(t, hasViolation(findByID(screened, "TX007"), "local_banido"))
}

func TestScreenMiscCategoryOverLimit(t *testing.T) {
	screened := Screen(mustParse(t))
	st := findByID(screened, "TX003")
	require.True(t, hasViolation(st, "categoria_invalida"))
}

func TestScreenOverLimitNonManager(t *testing.T) {
	screened := Screen(mustParse(t))
	st := findByID(screened, "TX004")
	assert.True(t, hasViolation(st, "limite_excedido"))
	assert.True(t, hasViolation(st, "item_proibido"), "wuphf is a prohibited investment")
}

func TestScreenManagerExemptFromPOLimit(t *testing.T) {
	tx := domain.Transaction{
		ID: "TXM", Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Employee: "Michael Scott", Role: "Gerente Regional",
		Description: "Contrato de consultoria", Amount: 900.00,
		Category: "Serviços", Department: "Vendas",
	}
	screened := Screen([]domain.Transaction{tx})
	assert.False(t, hasViolation(screened[0], "limite_excedido"))
}

func TestScreenSmurfing(t *testing.T) {
	screened := Screen(mustParse(t))
	// Ryan's three same-day transactions sum to 1230.00
	for _, id := range []string{"TX004", "TX005", "TX006"} {
		st := findByID(screened, id)
		require.True(t, hasViolation(st, "smurfing"), "transaction %s", id)
	}
	assert.False(t, hasViolation(findByID(screened, "TX001"), "smurfing"))
}

func TestScreenSmurfingNeedsMultipleTransactions(t *testing.T) {
	tx := domain.Transaction{
		ID: "TX1", Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Employee: "Stanley Hudson", Role: "Vendedor",
		Description: "Notebook", Amount: 1200.00, Category: "Equipamento", Department: "Vendas",
	}
	screened := Screen([]domain.Transaction{tx})
	assert.False(t, hasViolation(screened[0], "smurfing"), "a single large transaction is not splitting")
	assert.True(t, hasViolation(screened[0], "limite_excedido"))
}
