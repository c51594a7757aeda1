// Package signup implements the two-step account creation form: field
// rules, the step guard and the display masks for Brazilian documents.
package signup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
)

// ============================================================
// Field rules
// ============================================================

const (
	msgNameTooShort     = "Nome deve ter pelo menos 3 caracteres"
	msgNameTooLong      = "Nome deve ter no máximo 100 caracteres"
	msgEmailInvalid     = "E-mail inválido"
	msgEmailTooLong     = "E-mail deve ter no máximo 255 caracteres"
	msgCPFInvalid       = "CPF inválido. Use o formato 000.000.000-00"
	msgPhoneInvalid     = "Telefone inválido. Use o formato (00) 00000-0000"
	msgDateInvalid      = "Data inválida. Use o formato DD/MM/AAAA"
	msgPasswordShort    = "Senha deve ter pelo menos 8 caracteres"
	msgPasswordUpper    = "Senha deve conter pelo menos uma letra maiúscula"
	msgPasswordLower    = "Senha deve conter pelo menos uma letra minúscula"
	msgPasswordDigit    = "Senha deve conter pelo menos um número"
	msgPasswordMismatch = "As senhas não coincidem"
	msgTermsRequired    = "Você deve aceitar os termos de uso"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[a-z0-9_'+\-.]*[a-z0-9_+\-]@([a-z0-9][a-z0-9\-]*\.)+[a-z]{2,}$`)
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$|^\d{11}$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s?\d{4,5}-?\d{4}$|^\d{10,11}$`)
	datePattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// StepFields lists the fields validated by each step, in display order.
var StepFields = map[domain.Step][]domain.Field{
	domain.StepPersonalData: {
		domain.FieldFullName, domain.FieldEmail, domain.FieldCPF,
		domain.FieldPhone, domain.FieldBirthDate,
	},
	domain.StepPassword: {
		domain.FieldPassword, domain.FieldAcceptTerms,
	},
}

// IsEmail reports whether s is a syntactically valid e-mail address.
// Consecutive dots and a leading dot are rejected.
func IsEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// checkEmail returns the first failing e-mail message, or "".
func checkEmail(s string) string {
	if !IsEmail(s) {
		return msgEmailInvalid
	}
	if utf8.RuneCountInString(s) > 255 {
		return msgEmailTooLong
	}
	return ""
}

// checkPassword returns the first failing strength rule, or "".
func checkPassword(s string) string {
	switch {
	case utf8.RuneCountInString(s) < 8:
		return msgPasswordShort
	case !upperPattern.MatchString(s):
		return msgPasswordUpper
	case !lowerPattern.MatchString(s):
		return msgPasswordLower
	case !digitPattern.MatchString(s):
		return msgPasswordDigit
	}
	return ""
}

// check runs the rule of a single field. Text values are trimmed first,
// password values never are.
func check(f domain.Field, v domain.SignupFields) string {
	switch f {
	case domain.FieldFullName:
		n := utf8.RuneCountInString(strings.TrimSpace(v.FullName))
		if n < 3 {
			return msgNameTooShort
		}
		if n > 100 {
			return msgNameTooLong
		}
	case domain.FieldEmail:
		return checkEmail(strings.TrimSpace(v.Email))
	case domain.FieldCPF:
		if !cpfPattern.MatchString(strings.TrimSpace(v.CPF)) {
			return msgCPFInvalid
		}
	case domain.FieldPhone:
		if !phonePattern.MatchString(strings.TrimSpace(v.Phone)) {
			return msgPhoneInvalid
		}
	case domain.FieldBirthDate:
		if !datePattern.MatchString(strings.TrimSpace(v.BirthDate)) {
			return msgDateInvalid
		}
	case domain.FieldPassword:
		return checkPassword(v.Password)
	case domain.FieldConfirmPassword:
		if v.Password != v.ConfirmPassword {
			return msgPasswordMismatch
		}
	case domain.FieldAcceptTerms:
		if !v.AcceptTerms {
			return msgTermsRequired
		}
	}
	return ""
}

// PasswordChecklist evaluates the strength rules independently so the
// client can tick them off as the user types.
func PasswordChecklist(password string) domain.PasswordHint {
	return domain.PasswordHint{
		MinLength: utf8.RuneCountInString(password) >= 8,
		Uppercase: upperPattern.MatchString(password),
		Lowercase: lowerPattern.MatchString(password),
		Digit:     digitPattern.MatchString(password),
	}
}

// ============================================================
// Validator: step machine
// ============================================================

// Validator holds the state of one signup form. It is not safe for
// concurrent use; callers serialize access.
type Validator struct {
	step   domain.Step
	fields domain.SignupFields
	errors domain.FieldErrors
}

// New returns an empty form on step 1.
func New() *Validator {
	return &Validator{
		step:   domain.StepPersonalData,
		errors: domain.FieldErrors{},
	}
}

// Step returns the current step.
func (v *Validator) Step() domain.Step { return v.step }

// Fields returns the current raw values.
func (v *Validator) Fields() domain.SignupFields { return v.fields }

// Errors returns a copy of the current field errors.
func (v *Validator) Errors() domain.FieldErrors {
	out := make(domain.FieldErrors, len(v.errors))
	for k, msg := range v.errors {
		out[k] = msg
	}
	return out
}

// UpdateField stores value into field. Masked fields are formatted as
// typed. A field that already shows an error is re-validated so the
// message clears as soon as the input is fixed.
func (v *Validator) UpdateField(field domain.Field, value any) error {
	if !knownField(field) {
		return &domain.ErrValidation{Field: string(field), Message: fmt.Sprintf("unknown field %q", field)}
	}
	if field == domain.FieldAcceptTerms {
		b, ok := value.(bool)
		if !ok {
			return &domain.ErrValidation{Field: string(field), Message: "expected a boolean value"}
		}
		v.fields.AcceptTerms = b
	} else {
		s, ok := value.(string)
		if !ok {
			return &domain.ErrValidation{Field: string(field), Message: "expected a string value"}
		}
		if formatted, masked := Format(field, s); masked {
			s = formatted
		}
		switch field {
		case domain.FieldFullName:
			v.fields.FullName = s
		case domain.FieldEmail:
			v.fields.Email = s
		case domain.FieldCPF:
			v.fields.CPF = s
		case domain.FieldPhone:
			v.fields.Phone = s
		case domain.FieldBirthDate:
			v.fields.BirthDate = s
		case domain.FieldPassword:
			v.fields.Password = s
		case domain.FieldConfirmPassword:
			v.fields.ConfirmPassword = s
		}
	}

	if _, shown := v.errors[field]; shown {
		v.setError(field, check(field, v.fields))
	}
	return nil
}

// ValidateStep runs only the rules of step n and returns the failing
// fields. It does not change the form state.
func (v *Validator) ValidateStep(n domain.Step) (domain.FieldErrors, error) {
	fields, ok := StepFields[n]
	if !ok {
		return nil, &domain.ErrValidation{Field: "step", Message: fmt.Sprintf("unknown step %d", n)}
	}
	errs := domain.FieldErrors{}
	for _, f := range fields {
		if msg := check(f, v.fields); msg != "" {
			errs[f] = msg
		}
	}
	return errs, nil
}

// Advance moves to step 2 when every step-1 field passes. On failure
// the step-1 errors are replaced and the step stays at 1.
func (v *Validator) Advance() (domain.FieldErrors, bool) {
	errs, _ := v.ValidateStep(domain.StepPersonalData)
	for _, f := range StepFields[domain.StepPersonalData] {
		delete(v.errors, f)
	}
	for f, msg := range errs {
		v.errors[f] = msg
	}
	if len(errs) > 0 {
		return errs, false
	}
	v.step = domain.StepPassword
	return nil, true
}

// Retreat returns to step 1 without validating anything.
func (v *Validator) Retreat() {
	v.step = domain.StepPersonalData
}

// Submit validates both steps plus the password confirmation. On success
// it returns the sanitized profile; on failure every error is recorded
// and nothing is submitted. Submitting is only possible from the password
// step: on step 1 Submit returns no errors and ok false.
func (v *Validator) Submit() (*domain.SignupProfile, domain.FieldErrors, bool) {
	if v.step != domain.StepPassword {
		return nil, nil, false
	}
	errs, _ := v.ValidateStep(domain.StepPersonalData)
	step2, _ := v.ValidateStep(domain.StepPassword)
	for f, msg := range step2 {
		errs[f] = msg
	}
	if msg := check(domain.FieldConfirmPassword, v.fields); msg != "" {
		errs[domain.FieldConfirmPassword] = msg
	}

	v.errors = errs
	if len(errs) > 0 {
		return nil, v.Errors(), false
	}

	return &domain.SignupProfile{
		FullName:  strings.TrimSpace(v.fields.FullName),
		Email:     strings.TrimSpace(v.fields.Email),
		CPF:       strings.TrimSpace(v.fields.CPF),
		Phone:     strings.TrimSpace(v.fields.Phone),
		BirthDate: strings.TrimSpace(v.fields.BirthDate),
	}, nil, true
}

// Reset clears every field and error and returns to step 1.
func (v *Validator) Reset() {
	*v = *New()
}

// View returns the read model of the form. Password values are reported
// only as set or unset.
func (v *Validator) View() *domain.SignupView {
	return &domain.SignupView{
		Step:               v.step,
		Fields:             v.fields,
		PasswordSet:        v.fields.Password != "",
		ConfirmPasswordSet: v.fields.ConfirmPassword != "",
		PasswordChecklist:  PasswordChecklist(v.fields.Password),
		FieldErrors:        v.Errors(),
	}
}

func knownField(f domain.Field) bool {
	if f == domain.FieldConfirmPassword {
		return true
	}
	for _, fields := range StepFields {
		for _, known := range fields {
			if f == known {
				return true
			}
		}
	}
	return false
}

func (v *Validator) setError(f domain.Field, msg string) {
	if msg == "" {
		delete(v.errors, f)
		return
	}
	v.errors[f] = msg
}
