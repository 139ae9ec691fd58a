// Package validate holds pure validation and formatting helpers for client
// and equipment fields: Brazilian phone numbers, CPF/CNPJ documents, emails
// and serial numbers. All functions are deterministic and side-effect-free;
// each validator returns ok plus a human-readable message when not ok.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var nonDigits = regexp.MustCompile(`\D`)

// v backs Email and the tag-based rules; phone_br and doc_br wrap the
// checksum validators so request DTOs can use them as struct tags.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	must := func(tag string, fn validator.Func) {
		if err := val.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	must("phone_br", func(fl validator.FieldLevel) bool {
		ok, _ := Phone(fl.Field().String())
		return ok
	})
	must("doc_br", func(fl validator.FieldLevel) bool {
		ok, _ := Document(fl.Field().String())
		return ok
	})
	return val
}

// Struct validates a tagged struct using the package validator instance.
func Struct(s any) error { return v.Struct(s) }

// Digits strips every non-digit rune from s.
func Digits(s string) string { return nonDigits.ReplaceAllString(s, "") }

// Phone checks a Brazilian phone number: 10 or 11 digits after stripping
// separators, with a valid two-digit area code (11-99).
func Phone(phone string) (bool, string) {
	if phone == "" {
		return false, "phone is required"
	}
	d := Digits(phone)
	if len(d) != 10 && len(d) != 11 {
		return false, "phone must have 10 or 11 digits"
	}
	if d[0] == '0' || d[:2] == "10" {
		return false, "invalid area code"
	}
	return true, ""
}

// Email checks email format. Empty is accepted: the field is optional.
func Email(email string) (bool, string) {
	if email == "" {
		return true, ""
	}
	if err := v.Var(email, "email"); err != nil {
		return false, "invalid email"
	}
	return true, ""
}

// Document checks a CPF or CNPJ, selected by stripped-digit length.
// Empty is accepted: the field is optional.
func Document(doc string) (bool, string) {
	if doc == "" {
		return true, ""
	}
	switch len(Digits(doc)) {
	case 11:
		return CPF(doc)
	case 14:
		return CNPJ(doc)
	}
	return false, "document must be a CPF (11 digits) or CNPJ (14 digits)"
}

// CPF validates the two check digits of a CPF.
func CPF(cpf string) (bool, string) {
	d := Digits(cpf)
	if len(d) != 11 {
		return false, "CPF must have 11 digits"
	}
	if allSame(d) {
		return false, "invalid CPF"
	}
	if int(d[9]-'0') != cpfDigit(d[:9], 10) || int(d[10]-'0') != cpfDigit(d[:10], 11) {
		return false, "invalid CPF"
	}
	return true, ""
}

// CNPJ validates the two check digits of a CNPJ.
func CNPJ(cnpj string) (bool, string) {
	d := Digits(cnpj)
	if len(d) != 14 {
		return false, "CNPJ must have 14 digits"
	}
	if allSame(d) {
		return false, "invalid CNPJ"
	}
	first := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	second := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	if int(d[12]-'0') != cnpjDigit(d[:12], first) || int(d[13]-'0') != cnpjDigit(d[:13], second) {
		return false, "invalid CNPJ"
	}
	return true, ""
}

// SerialNumber checks an equipment serial: non-blank, at least 3 characters.
func SerialNumber(serial string) (bool, string) {
	s := strings.TrimSpace(serial)
	if s == "" {
		return false, "serial number is required"
	}
	if len(s) < 3 {
		return false, "serial number too short"
	}
	return true, ""
}

// cpfDigit computes a CPF check digit over the partial digit string with
// descending weights starting at startWeight.
func cpfDigit(partial string, startWeight int) int {
	sum := 0
	for i := 0; i < len(partial); i++ {
		sum += int(partial[i]-'0') * (startWeight - i)
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

// cnpjDigit computes a CNPJ check digit over the partial digit string with
// the given weight table.
func cnpjDigit(partial string, weights []int) int {
	sum := 0
	for i := 0; i < len(partial); i++ {
		sum += int(partial[i]-'0') * weights[i]
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
