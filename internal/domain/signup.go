package domain

// ============================================================
// Signup: two-step account creation form
// ============================================================

// Step is a stage of the signup form.
type Step int

const (
	StepPersonalData Step = 1
	StepPassword     Step = 2
)

// Field names a signup form input. Values match the JSON names used by
// the web client.
type Field string

const (
	FieldFullName        Field = "fullName"
	FieldEmail           Field = "email"
	FieldCPF             Field = "cpf"
	FieldPhone           Field = "phone"
	FieldBirthDate       Field = "birthDate"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldAcceptTerms     Field = "acceptTerms"
)

// FieldErrors maps a field to the message of its first failing rule.
type FieldErrors map[Field]string

// SignupFields holds the raw values typed by the user.
type SignupFields struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	CPF             string `json:"cpf"`
	Phone           string `json:"phone"`
	BirthDate       string `json:"birthDate"`
	Password        string `json:"-"`
	ConfirmPassword string `json:"-"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// SignupProfile is the sanitized payload of a successful signup.
// Password fields are never part of it.
type SignupProfile struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	CPF       string `json:"cpf"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
}

// SignupView is the read model of the signup form exposed to the client.
type SignupView struct {
	Step               Step         `json:"step"`
	Fields             SignupFields `json:"fields"`
	PasswordSet        bool         `json:"passwordSet"`
	ConfirmPasswordSet bool         `json:"confirmPasswordSet"`
	PasswordChecklist  PasswordHint `json:"passwordChecklist"`
	FieldErrors        FieldErrors  `json:"fieldErrors"`
}

// PasswordHint drives the live "Sua senha deve ter" checklist.
type PasswordHint struct {
	MinLength bool `json:"minLength"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Digit     bool `json:"digit"`
}

// FieldUpdateRequest is the body for PUT /v1/session/signup/fields/{field}.
// Value is decoded per field: bool for acceptTerms, string otherwise.
type FieldUpdateRequest struct {
	Value any `json:"value"`
}

// FormatRequest is the body for POST /v1/format/{field}.
type FormatRequest struct {
	Value string `json:"value"`
}

// FormatResponse is returned by POST /v1/format/{field}.
type FormatResponse struct {
	Field     Field  `json:"field"`
	Formatted string `json:"formatted"`
}
