package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policySample = `POLITICA DE COMPLIANCE

SECAO 1 - LIMITES DE APROVACAO
Ate $50 o funcionario tem autonomia. De $50 a $500 precisa de aprovacao do
Gerente Regional. Acima de $500 precisa de Purchase Order assinado pelo CFO.

==============================================================================

SECAO 2 - DESPESAS DE REFEICAO
Refeicoes com clientes devem acontecer em locais aprovados. A categoria
Diversos nao e aceitavel para valores acima de $5.00.

==============================================================================

SECAO 3 - ITENS PROIBIDOS
E proibido usar dinheiro da empresa para projetos pessoais, startups ou
produtos de conjuges e parentes.
`

func TestChunkReconstructsDocument(t *testing.T) {
	docs := []string{
		policySample,
		"one short paragraph only",
		"a\n\nb\n\nc",
		strings.Repeat("palavra ", 500),
		"line\n" + strings.Repeat("=", 78) + "\nnext section",
	}
	c := NewSectionChunker(120)
	for _, doc := range docs {
		chunks, err := c.Chunk("policy", doc)
		require.NoError(t, err)
		var sb strings.Builder
		for _, ch := range chunks {
			sb.WriteString(ch.Text)
		}
		assert.Equal(t, doc, sb.String(), "concatenated chunks must reconstruct the document")
	}
}

func TestChunkRespectsMaxLen(t *testing.T) {
	c := NewSectionChunker(100)
	chunks, err := c.Chunk("policy", policySample)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Text), 100)
	}
}

func TestChunkOffsetsAndIDs(t *testing.T) {
	c := NewSectionChunker(80)
	chunks, err := c.Chunk("policy", policySample)
	require.NoError(t, err)
	offset := 0
	for i, ch := range chunks {
		assert.Equal(t, i, ch.ID)
		assert.Equal(t, offset, ch.Offset)
		assert.Equal(t, policySample[ch.Offset:ch.Offset+len(ch.Text)], ch.Text)
		offset += len(ch.Text)
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := NewSectionChunker(90)
	a, err := c.Chunk("policy", policySample)
	require.NoError(t, err)
	b, err := c.Chunk("policy", policySample)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestChunkAvoidsMidWordSplits(t *testing.T) {
	// a long run of repeated words with no sentence boundaries forces hard
	// truncation, which should still cut at spaces
	doc := strings.TrimSpace(strings.Repeat("fronteira ", 100))
	c := NewSectionChunker(64)
	chunks, err := c.Chunk("doc", doc)
	require.NoError(t, err)
	for i, ch := range chunks {
		if i == len(chunks)-1 {
			continue
		}
		assert.True(t, strings.HasSuffix(ch.Text, " "),
			"chunk %d should end at a word boundary: %q", i, ch.Text)
	}
}

func TestChunkHardCutsOversizedWord(t *testing.T) {
	doc := strings.Repeat("x", 350)
	c := NewSectionChunker(100)
	chunks, err := c.Chunk("doc", doc)
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	var sb strings.Builder
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Text), 100)
		sb.WriteString(ch.Text)
	}
	assert.Equal(t, doc, sb.String())
}

func TestChunkEmptyDocument(t *testing.T) {
	c := NewSectionChunker(100)
	chunks, err := c.Chunk("doc", "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkSectionBoundariesCloseChunks(t *testing.T) {
	sep := strings.Repeat("=", 78)
	doc := "secao um\n" + sep + "\nsecao dois\n" + sep + "\nsecao tres\n"
	c := NewSectionChunker(1000)
	chunks, err := c.Chunk("policy", doc)
	require.NoError(t, err)
	// plenty of room in one chunk, but separators must still split sections
	require.Len(t, chunks, 3)
	assert.Contains(t, chunks[0].Text, "secao um")
	assert.Contains(t, chunks[1].Text, "secao dois")
	assert.Contains(t, chunks[2].Text, "secao tres")
}
