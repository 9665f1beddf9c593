package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestaolivre/erp-api/pkg/fiscal"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"São José", "sao jose"},
		{"AÇOUGUE DO JOÃO", "acougue do joao"},
		{"  Padaria Pão Quente  ", "padaria pao quente"},
		{"Müller & Cia", "muller & cia"},
		{"sem acento", "sem acento"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fiscal.NormalizeName(tc.in), "entrada: %q", tc.in)
	}
}
