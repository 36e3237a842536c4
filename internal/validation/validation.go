package validation

import (
	"strings"
	"unicode"

	english "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// passwordSymbols is the punctuation set a password must draw at least one
// symbol from.
const passwordSymbols = `!@#$%^&*()-_=+[]{};:'",.<>/?|~`

// Error is a request validation failure carrying a client-facing message.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Validator validates request payloads against their struct tags and turns
// failures into translated, client-facing messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English messages and the username and
// password policy rules registered.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	en := english.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("username", validUsername); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("password", validPassword); err != nil {
		return nil, err
	}

	customMessages := map[string]string{
		"username": "{0} must be 3 to 20 characters of letters, digits, hyphens or underscores",
		"password": "{0} must be 8 to 50 characters with at least one letter, one digit and one symbol, and no spaces",
	}
	for tag, message := range customMessages {
		if err := registerTranslation(validate, trans, tag, message); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s and returns an *Error describing every failed field,
// or nil when s is valid.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldErr.Translate(v.trans))
	}

	return &Error{message: strings.Join(messages, "; ")}
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, message string) error {
	return validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}

			return t
		},
	)
}

// validUsername enforces the handle policy: 3 to 20 characters, letters and
// digits plus hyphen and underscore.
func validUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 20 {
		return false
	}

	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}

// validPassword enforces the password policy: 8 to 50 characters, at least
// one letter, one digit and one symbol from passwordSymbols, no whitespace.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	return hasLetter && hasDigit && hasSymbol
}
