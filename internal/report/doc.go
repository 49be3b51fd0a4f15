// Package report writes the review screen and refine results.
//
// Writers exist for terminal text, Markdown and JSON. Each implements
// Writer, so they can be used interchangeably and combined with
// MultiWriter, e.g. text on the terminal and Markdown into a file.
package report
