// Package app runs the interactive terminal session: the entry screen asks
// for a blog post URL, the review screen lets the user approve structure
// suggestions and links, and the result screen shows the refreshed article
// or the rendering-error panel.
package app
