// Package review holds the controllers behind the entry and review screens.
//
// The EntryController submits a document URL for auditing and stores the
// result in the session. The Controller owns the approval state of the
// loaded audit, turns it into a generation request and commits the
// generated markup back into the session.
package review
