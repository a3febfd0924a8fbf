package book

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft is form input for a new record. Every field is still raw text.
type Draft struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   string `json:"year" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// trimmed returns d with surrounding whitespace removed from every field.
// It only decides whether a field counts as blank; the text stored is the
// text entered.
func (d Draft) trimmed() Draft {
	return Draft{
		Title:  strings.TrimSpace(d.Title),
		Author: strings.TrimSpace(d.Author),
		Year:   strings.TrimSpace(d.Year),
	}
}

// Parse validates d and returns the record it describes. The returned Book
// has no ID; the store assigns one on insert.
//
// Empty fields are checked before the year is coerced, so a form with a
// blank title and a bad year reports CodeEmptyField. A field holding only
// whitespace counts as empty. Title and author are returned as entered.
func (d Draft) Parse() (Book, error) {
	if err := validate.Struct(d.trimmed()); err != nil {
		return Book{}, formatValidation(err)
	}

	year, err := ParseYear(d.Year)
	if err != nil {
		return Book{}, err
	}

	return Book{Title: d.Title, Author: d.Author, Year: year}, nil
}

// formatValidation converts validator errors into a single ValidationError
// carrying one detail per failed field.
func formatValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		default:
			details[fe.Field()] = "is invalid"
		}
	}

	return &ValidationError{
		Code:    CodeEmptyField,
		Message: "all fields must be filled",
		Details: details,
	}
}
