// Package main provides the entry point for the blogrefresh CLI.
//
// blogrefresh sends a blog post to the refresh backend for an audit, lets
// you approve the proposed structure changes and link removals, and shows
// the regenerated article.
//
// Usage:
//
//	blogrefresh refine <url>
//	blogrefresh refine --yes --json <url>...
//
// See --help for all available options.
package main

func main() {
	Execute()
}
