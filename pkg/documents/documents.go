// Package documents validates and formats Brazilian identifiers used across
// the condominium records: CPF, CNPJ, CEP, and phone numbers.
package documents

import (
	"fmt"
	"strings"
)

// digits strips everything except 0-9.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF runs the CPF checksum. Formatting characters are ignored; inputs
// with all-equal digits are rejected per the official rule.
func ValidCPF(cpf string) bool {
	d := digits(cpf)
	if len(d) != 11 {
		return false
	}
	allEqual := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}
	if checkDigit(d, 9) != int(d[9]-'0') {
		return false
	}
	return checkDigit(d, 10) == int(d[10]-'0')
}

// checkDigit computes the CPF verification digit over the first n digits.
func checkDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	v := (sum * 10) % 11
	if v == 10 {
		v = 0
	}
	return v
}

// FormatCNPJ renders a 14-digit CNPJ as 00.000.000/0000-00. Anything that is
// not 14 digits long is returned unchanged.
func FormatCNPJ(cnpj string) string {
	d := digits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

// FormatCEP renders an 8-digit CEP as 00000-000.
func FormatCEP(cep string) string {
	d := digits(cep)
	if len(d) != 8 {
		return cep
	}
	return d[0:5] + "-" + d[5:8]
}

// FormatPhone renders 10- and 11-digit numbers as (00) 0000-0000 and
// (00) 00000-0000 respectively.
func FormatPhone(phone string) string {
	d := digits(phone)
	switch len(d) {
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:6], d[6:10])
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:7], d[7:11])
	default:
		return phone
	}
}
