// Package forms validates user input before it goes anywhere near the
// network. Validation failures are field-keyed so a view can render each
// message next to the offending input; they are never handed to the
// stores — an invalid form simply doesn't become a request.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/snipshare/internal/api"
	"github.com/sakif/snipshare/internal/model"
)

// Languages the snippet form accepts. Superset of the search filter's
// options; "all" is a filter sentinel, not a language, and is not here.
var Languages = []string{
	"javascript", "typescript", "python", "java", "csharp",
	"go", "ruby", "rust", "c", "cpp",
}

// validate is the shared validator instance. It is stateless after
// construction and safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// oneof can't take a variable list in a tag, so languages get their own
	// named rule.
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, lang := range Languages {
			if value == lang {
				return true
			}
		}
		return false
	})
	return v
}

// Errors maps field names to human-readable messages.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Login is the login form.
type Login struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Register is the registration form. The company fields are optional;
// the website must be a URL when present.
type Register struct {
	Email          string `validate:"required,email"`
	Password       string `validate:"required,min=8"`
	FirstName      string `validate:"required"`
	LastName       string `validate:"required"`
	Username       string `validate:"required,min=3,max=30,alphanum"`
	Position       string
	CompanyName    string
	CompanyWebsite string `validate:"omitempty,url"`
}

// Input converts a validated registration form into the API payload.
func (r Register) Input() api.RegisterInput {
	return api.RegisterInput{
		Email:          r.Email,
		Password:       r.Password,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Username:       r.Username,
		Position:       r.Position,
		CompanyName:    r.CompanyName,
		CompanyWebsite: r.CompanyWebsite,
	}
}

// Snippet is the create/update snippet form.
type Snippet struct {
	Title               string   `validate:"required,max=100"`
	Description         string   `validate:"max=500"`
	Content             string   `validate:"required,max=100000"`
	ProgrammingLanguage string   `validate:"required,language"`
	Tags                []string `validate:"max=10,dive,required,max=30"`
	IsPublic            bool
}

// Input converts a validated snippet form into the API payload, trimming
// the display fields.
func (s Snippet) Input() model.SnippetInput {
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return model.SnippetInput{
		Title:               strings.TrimSpace(s.Title),
		Description:         strings.TrimSpace(s.Description),
		Content:             s.Content,
		Tags:                tags,
		ProgrammingLanguage: s.ProgrammingLanguage,
		IsPublic:            s.IsPublic,
	}
}

// Check validates any of the form structs above, returning field-keyed
// messages on failure and nil on success.
func Check(form any) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only happens when the form isn't a struct — a programming error,
		// not user input. Surface it on a catch-all key.
		return Errors{"form": err.Error()}
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// message renders one validator failure as something a person can act on.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "alphanum":
		return "may only contain letters and numbers"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("must have at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "language":
		return "must be one of: " + strings.Join(Languages, ", ")
	default:
		return "is invalid"
	}
}
