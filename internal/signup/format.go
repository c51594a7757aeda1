package signup

import (
	"regexp"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
)

// Display masks applied while the user types. Each mask strips
// non-digits, caps the digit count, then inserts separators. Every
// replacement touches only the first match, so partial input yields a
// partial mask ("1234" -> "123.4").

var (
	nonDigit = regexp.MustCompile(`\D`)

	cpfGroup = regexp.MustCompile(`(\d{3})(\d)`)
	cpfTail  = regexp.MustCompile(`(\d{3})(\d{1,2})`)
	areaCode = regexp.MustCompile(`(\d{2})(\d)`)
	landline = regexp.MustCompile(`(\d{4})(\d)`)
	mobile   = regexp.MustCompile(`(\d{5})(\d)`)
	datePart = regexp.MustCompile(`(\d{2})(\d)`)
)

// FormatCPF masks s as 000.000.000-00.
func FormatCPF(s string) string {
	n := digits(s, 11)
	n = replaceFirst(cpfGroup, n, "$1.$2")
	n = replaceFirst(cpfGroup, n, "$1.$2")
	return replaceFirst(cpfTail, n, "$1-$2")
}

// FormatPhone masks s as (00) 00000-0000, or (00) 0000-0000 for ten
// digits or fewer.
func FormatPhone(s string) string {
	n := digits(s, 11)
	if len(n) <= 10 {
		n = replaceFirst(areaCode, n, "($1) $2")
		return replaceFirst(landline, n, "$1-$2")
	}
	n = replaceFirst(areaCode, n, "($1) $2")
	return replaceFirst(mobile, n, "$1-$2")
}

// FormatBirthDate masks s as DD/MM/YYYY.
func FormatBirthDate(s string) string {
	n := digits(s, 8)
	n = replaceFirst(datePart, n, "$1/$2")
	return replaceFirst(datePart, n, "$1/$2")
}

// Format applies the mask of field to s. Fields without a mask are
// returned unchanged and ok is false.
func Format(field domain.Field, s string) (formatted string, ok bool) {
	switch field {
	case domain.FieldCPF:
		return FormatCPF(s), true
	case domain.FieldPhone:
		return FormatPhone(s), true
	case domain.FieldBirthDate:
		return FormatBirthDate(s), true
	}
	return s, false
}

func digits(s string, max int) string {
	n := nonDigit.ReplaceAllString(s, "")
	if len(n) > max {
		n = n[:max]
	}
	return n
}

func replaceFirst(re *regexp.Regexp, s, template string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	out := re.ExpandString(nil, template, s, m)
	return s[:m[0]] + string(out) + s[m[1]:]
}
