// Package todo stores personal tasks in a single JSON file.
//
// The task file (todo.json by default) is one JSON object keyed by decimal
// task ids:
//
//	{
//	  "1": {
//	    "task_name": "Buy milk",
//	    "due_date": "2025-01-01",
//	    "status": "Not Started"
//	  },
//	  "2": {
//	    "task_name": "Call home",
//	    "due_date": null,
//	    "status": "Done"
//	  }
//	}
//
// # Ids
//
// A new task gets the current maximum id plus one, or 1 when the store is
// empty. Deleting every task therefore restarts numbering at 1.
//
// # Persistence
//
// The whole file is rewritten after every mutation. Writes go to a
// temporary file in the same directory which is then renamed over the
// target, so readers never observe a partially written file.
//
// # Validation
//
// Files are checked against an embedded JSON Schema (draft 2020-12) when a
// store is opened. A file that fails to parse or validate is a fatal error;
// the store never starts from a half-read file.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Keys in ascending numeric order
package todo
