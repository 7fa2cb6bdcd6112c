package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/cte-checker/internal/normalize"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"São Paulo", "sao paulo"},
		{"Rua das Flores", "das flores"},
		{"11.222.333/0001-44", "11222333000144"},
		{"Av. Brasil, São Paulo", "brasil sao paulo"},
		{"AVENIDA Paulista, 1000 - Bela Vista", "paulista 1000 bela vista"},
		{"Travessa São João", "sao joao"},
		{"Estrada-Velha km 5", "velha km 5"},
		{"Rodovia BR-116, km 10", "br116 km 10"},
		{"Indústria Mineira S.A.", "industria mineira sa"},
		{"  múltiplos   espaços\t\n", "multiplos espacos"},
		{"Ação & Cia", "acao cia"},
		{"ÇÃÕÉ", "caoe"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.Normalize(tt.input))
		})
	}
}

func TestNormalize_WholeWordTokensOnly(t *testing.T) {
	assert.Equal(t, "ruas novas", normalize.Normalize("Ruas Novas"))
	assert.Equal(t, "avenidas", normalize.Normalize("Avenidas"))
	assert.Equal(t, "rua_nova", normalize.Normalize("Rua_Nova"), "underscore is a word character")
	assert.Equal(t, "travessao", normalize.Normalize("Travessão"), "accents are stripped before token matching")
}

func TestNormalize_NonASCIILettersDropped(t *testing.T) {
	// Only ASCII word characters survive punctuation stripping
	assert.Equal(t, "strae", normalize.Normalize("Straße"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"São Paulo",
		"Rua das Flores, 123 - Apto. 4",
		"Av. Brasil, São Paulo",
		"11.222.333/0001-44",
		"CEP 01310-100",
		"Transportes Rápidos Ltda.",
		"  RODOVIA   Anhanguera, km 100 ",
		"estrada_velha",
		"",
	}

	for _, in := range inputs {
		once := normalize.Normalize(in)
		assert.Equal(t, once, normalize.Normalize(once), "input %q", in)
	}
}

func TestNormalize_TokenJoinedByPunctuation(t *testing.T) {
	// Tokens are removed before punctuation, so a dotted token only forms on the first pass
	once := normalize.Normalize("r.ua x")
	assert.Equal(t, "rua x", once)
	assert.Equal(t, "x", normalize.Normalize(once))
	assert.NotEqual(t, once, normalize.Normalize(once))
}

func TestEquivalent(t *testing.T) {
	assert.True(t, normalize.Equivalent("São Paulo", "sao paulo"))
	assert.True(t, normalize.Equivalent("Rua das Flores", "das Flores"))
	assert.True(t, normalize.Equivalent("11.222.333/0001-44", "11222333000144"))
	assert.True(t, normalize.Equivalent("Av. Brasil, São Paulo", "brasil sao paulo"))
	assert.True(t, normalize.Equivalent("COMERCIAL PAULISTA LTDA", "Comercial Paulista Ltda."))

	assert.False(t, normalize.Equivalent("Campinas", "Campinas Sul"))
	assert.False(t, normalize.Equivalent("01310-100", "01310-200"))
	assert.False(t, normalize.Equivalent("Rua A", "Rua B"))
}
