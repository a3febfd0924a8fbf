package controller

import (
	"fmt"

	"github.com/roach88/shelf/internal/book"
)

// Form holds the three text inputs of the entry form.
type Form struct {
	Title  string
	Author string
	Year   string
}

// Draft returns the form contents as an unvalidated record.
func (f *Form) Draft() book.Draft {
	return book.Draft{Title: f.Title, Author: f.Author, Year: f.Year}
}

// Clear empties every input.
func (f *Form) Clear() {
	*f = Form{}
}

// Edit is a single cell change, detached from the widget that produced it.
type Edit struct {
	RowID int64
	Field book.Field
	Old   string
	New   string
}

// String describes the edit for logs.
func (e Edit) String() string {
	return fmt.Sprintf("book %d %s: %q -> %q", e.RowID, e.Field, e.Old, e.New)
}
