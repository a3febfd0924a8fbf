// Package harness replays scripted catalog sessions.
//
// A script is a YAML list of user actions run against a controller. Every
// step and every message it produces is written to a Transcript, which
// tests compare against golden files and `shelf play` prints.
//
// # Script Format
//
//	name: dune
//	description: "Save, correct and remove a record"
//	confirm_delete: true
//	steps:
//	  - save: {title: Dune, author: Frank Herbert, year: "1965"}
//	  - edit: {row: 0, field: year, value: abc}
//	  - search: Du
//	  - select: 0
//	  - decline: true
//	  - delete: true
//	  - export: out.csv
//	  - reload: true
//	  - show: true
//	  - expect:
//	      count: 0
//	      message: "[info] Export Complete: Exported 0 books to out.csv."
//
// Each step holds exactly one action. `delete` answers yes to the
// confirmation question, `decline` answers no. `export` answers the path
// prompt; an empty path cancels. Relative export paths resolve against
// Options.Dir.
//
// # Expectations
//
// An expect step checks the displayed rows (`rows`, `count`), the
// selection (`selected`, -1 for none), the active search text (`search`)
// and the most recent message (`message`). Mismatches are recorded as
// failures and the script keeps running.
package harness
