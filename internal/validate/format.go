package validate

import "fmt"

// FormatCPF renders a validated CPF as XXX.XXX.XXX-XX. Input is returned
// unchanged when it does not carry 11 digits.
func FormatCPF(cpf string) string {
	d := Digits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[:3], d[3:6], d[6:9], d[9:])
}

// FormatCNPJ renders a validated CNPJ as XX.XXX.XXX/XXXX-XX. Input is
// returned unchanged when it does not carry 14 digits.
func FormatCNPJ(cnpj string) string {
	d := Digits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[:2], d[2:5], d[5:8], d[8:12], d[12:])
}

// FormatPhone renders a phone as (XX) XXXXX-XXXX or (XX) XXXX-XXXX.
// Input is returned unchanged when it has neither 10 nor 11 digits.
func FormatPhone(phone string) string {
	d := Digits(phone)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	}
	return phone
}
