// Package fiscal: cálculo da chave de acesso da NF-e (44 dígitos) e validações
// dos campos fiscais de produto (NCM, CFOP) conforme layout da NF-e modelo 55.
package fiscal

import (
	"fmt"
	"time"
	"unicode"
)

// Modelo do documento fiscal eletrônico (NF-e).
const ModeloNFe = "55"

// ChaveParams contém os dados para montar a chave de acesso (ordem estrita do layout).
// cUF(2) + AAMM(4) + CNPJ(14) + mod(2) + série(3) + nNF(9) + tpEmis(1) + cNF(8) + cDV(1).
type ChaveParams struct {
	UFCode   string    // código IBGE da UF do emitente, 2 dígitos
	CNPJ     string    // CNPJ do emitente, 14 dígitos (pontuação é removida)
	Series   string    // série da nota, até 3 dígitos
	Number   int64     // número sequencial da nota (nNF)
	IssuedAt time.Time // data de emissão (AAMM)
	Code     int64     // código numérico aleatório (cNF), até 8 dígitos
}

// BuildAccessKey monta a chave de acesso completa com o dígito verificador módulo 11.
func BuildAccessKey(p ChaveParams) (string, error) {
	uf := string(extractDigits(p.UFCode))
	if len(uf) != 2 {
		return "", fmt.Errorf("fiscal: código da UF deve ter 2 dígitos, recebido %q", p.UFCode)
	}
	cnpj := string(extractDigits(p.CNPJ))
	if len(cnpj) != 14 {
		return "", fmt.Errorf("fiscal: CNPJ do emitente deve ter 14 dígitos, recebidos %d", len(cnpj))
	}
	if p.Number <= 0 || p.Number > 999999999 {
		return "", fmt.Errorf("fiscal: número da nota fora do intervalo: %d", p.Number)
	}
	if p.Code < 0 || p.Code > 99999999 {
		return "", fmt.Errorf("fiscal: código numérico fora do intervalo: %d", p.Code)
	}
	series := string(extractDigits(p.Series))
	if series == "" || len(series) > 3 {
		return "", fmt.Errorf("fiscal: série inválida: %q", p.Series)
	}
	for len(series) < 3 {
		series = "0" + series
	}

	base := fmt.Sprintf("%s%s%s%s%s%09d%s%08d",
		uf,
		p.IssuedAt.Format("0601"), // AAMM
		cnpj,
		ModeloNFe,
		series,
		p.Number,
		"1", // tpEmis = 1 (emissão normal)
		p.Code,
	)
	if len(base) != 43 {
		return "", fmt.Errorf("fiscal: base da chave deve ter 43 dígitos, montados %d", len(base))
	}
	dv := ComputeAccessKeyDigit(base)
	return base + string(dv), nil
}

// ComputeAccessKeyDigit calcula o dígito verificador (módulo 11) dos 43 primeiros
// dígitos da chave. Pesos 2..9 aplicados da direita para a esquerda, ciclando.
// Resto 0 ou 1 resulta em dígito 0.
func ComputeAccessKeyDigit(base string) byte {
	weight := 2
	sum := 0
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

// ValidateAccessKey valida comprimento, conteúdo numérico e dígito verificador.
func ValidateAccessKey(key string) error {
	digits := extractDigits(key)
	if len(digits) != 44 {
		return fmt.Errorf("fiscal: chave de acesso deve ter 44 dígitos, recebidos %d", len(digits))
	}
	base := string(digits[:43])
	if expected := ComputeAccessKeyDigit(base); digits[43] != expected {
		return fmt.Errorf("fiscal: dígito verificador inválido: esperado %c, recebido %c", expected, digits[43])
	}
	return nil
}

// ValidateNCM valida o código NCM (Nomenclatura Comum do Mercosul): 8 dígitos.
func ValidateNCM(ncm string) error {
	digits := extractDigits(ncm)
	if len(digits) != 8 {
		return fmt.Errorf("fiscal: NCM deve ter 8 dígitos, recebidos %d", len(digits))
	}
	return nil
}

// ValidateCFOP valida o CFOP (Código Fiscal de Operações e Prestações): 4 dígitos,
// primeiro dígito entre 1 e 7 (entradas 1-3, saídas 5-7).
func ValidateCFOP(cfop string) error {
	digits := extractDigits(cfop)
	if len(digits) != 4 {
		return fmt.Errorf("fiscal: CFOP deve ter 4 dígitos, recebidos %d", len(digits))
	}
	if digits[0] < '1' || digits[0] > '7' || digits[0] == '4' {
		return fmt.Errorf("fiscal: primeiro dígito do CFOP inválido: %c", digits[0])
	}
	return nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
