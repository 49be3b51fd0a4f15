// Package session holds the state shared by the screens of one review
// session: the submitted URL, the audit and the final generated markup.
//
// A Store is created empty, filled by the analyze step, extended by the
// generate step and read by the review and result screens. It is passed
// explicitly to every controller that needs it.
//
// Screens are resolved against the store's contents: a screen whose
// precondition is missing resolves to ScreenEntry.
package session
