// Package model defines the data structures exchanged with the audit/generation
// backend and shared by the review packages.
//
// This package contains the following main types:
//   - AuditResult: The backend audit with structure suggestions and link reviews
//   - StructureSuggestion: A proposed merge or delete of one or more sections
//   - LinkReview: A validity verdict for one hyperlink of the source document
//   - GenerationRequest: The payload sent to the generate endpoint
//   - GeneratedContent: The rendered markup returned by the generate endpoint
//   - RefreshReport: The outcome of one non-interactive refine run
//
// Wire field names are snake_case and fixed by the backend contract.
// Values decoded from the backend are checked with AuditResult.Validate
// before anything else in the program reads them.
package model
