// Package render turns generated article markup into plain text for the
// terminal result screen. It also lists the headings and links of the
// article so they can be compared with the approved selection.
package render
