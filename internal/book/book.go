package book

import (
	"strconv"
	"strings"
)

// Book is one catalog record.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// Field names a table column.
type Field string

const (
	FieldID     Field = "id"
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
)

// Columns lists the table columns in display order.
var Columns = []Field{FieldID, FieldTitle, FieldAuthor, FieldYear}

// Headers are the display and export labels for Columns.
var Headers = []string{"ID", "Title", "Author", "Year"}

// ParseField resolves a column name, ignoring case and surrounding space.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Columns {
		if c == f {
			return f, nil
		}
	}
	return "", &ValidationError{
		Code:    CodeUnknownField,
		Field:   s,
		Message: "unknown column",
	}
}

// FieldAt returns the column at display index col.
func FieldAt(col int) (Field, error) {
	if col < 0 || col >= len(Columns) {
		return "", &ValidationError{
			Code:    CodeUnknownField,
			Field:   strconv.Itoa(col),
			Message: "column out of range",
		}
	}
	return Columns[col], nil
}

// Editable reports whether cells of this column may be changed by the user.
// The id column is assigned by the store and never editable.
func (f Field) Editable() bool {
	return f == FieldTitle || f == FieldAuthor || f == FieldYear
}

// Value returns the field of b as display text.
func (b Book) Value(f Field) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(b.ID, 10)
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldYear:
		return strconv.Itoa(b.Year)
	}
	return ""
}

// Strings returns the record as text in column order.
func (b Book) Strings() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = b.Value(c)
	}
	return out
}

// ParseYear coerces entered text to an integer year.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{
			Code:    CodeInvalidYear,
			Field:   string(FieldYear),
			Message: "year must be a number",
			cause:   err,
		}
	}
	return year, nil
}

// Coerce converts raw cell text into the value stored for column f.
// Returns a ValidationError for the id column, for unknown columns, for
// blank text and for a year that is not an integer. Title and author text
// is returned unchanged.
func Coerce(f Field, raw string) (any, error) {
	switch f {
	case FieldID:
		return nil, &ValidationError{
			Code:    CodeReadOnly,
			Field:   string(f),
			Message: "id is assigned by the catalog and cannot be edited",
		}
	case FieldTitle, FieldAuthor:
		if strings.TrimSpace(raw) == "" {
			return nil, &ValidationError{
				Code:    CodeEmptyField,
				Field:   string(f),
				Message: "is required",
			}
		}
		return raw, nil
	case FieldYear:
		return ParseYear(raw)
	}
	return nil, &ValidationError{
		Code:    CodeUnknownField,
		Field:   string(f),
		Message: "unknown column",
	}
}
