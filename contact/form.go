// Package contact validates and submits the site's contact form.
package contact

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// FormName identifies the form to static-site form handlers.
const FormName = "contact"

// Field names as posted by the browser.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldMessage  = "message"
	FieldHoneypot = "bot-field"
	FieldFormName = "form-name"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is one submission.
type Form struct {
	Name     string
	Email    string
	Message  string
	Honeypot string
}

// FormFromValues reads a form from posted values.
func FormFromValues(v url.Values) Form {
	return Form{
		Name:     v.Get(FieldName),
		Email:    v.Get(FieldEmail),
		Message:  v.Get(FieldMessage),
		Honeypot: v.Get(FieldHoneypot),
	}
}

// Values encodes f the way the browser posts it.
func (f Form) Values() url.Values {
	return url.Values{
		FieldFormName: {FormName},
		FieldName:     {f.Name},
		FieldEmail:    {f.Email},
		FieldMessage:  {f.Message},
		FieldHoneypot: {f.Honeypot},
	}
}

// IsBot reports whether the hidden honeypot field was filled.
func (f Form) IsBot() bool {
	return strings.TrimSpace(f.Honeypot) != ""
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for k := range e {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return "contact: invalid " + strings.Join(fields, ", ")
}

// Validate checks the required fields and returns nil when f is valid.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs[FieldName] = "Por favor, introduce tu nombre."
	}
	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		errs[FieldEmail] = "Por favor, introduce tu correo electrónico."
	case !ValidEmail(email):
		errs[FieldEmail] = "Por favor, introduce un correo electrónico válido."
	}
	if strings.TrimSpace(f.Message) == "" {
		errs[FieldMessage] = "Por favor, escribe un mensaje."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidEmail reports whether s has a local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Trimmed returns f with surrounding whitespace removed.
func (f Form) Trimmed() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Message:  strings.TrimSpace(f.Message),
		Honeypot: f.Honeypot,
	}
}
