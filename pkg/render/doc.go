// Package render produces visual output of a course catalog.
//
// The catalog graph is converted to Graphviz DOT ([ToDOT]) and rendered to
// SVG or PNG in-process via goccy/go-graphviz ([RenderSVG], [RenderPNG]).
// PDF output shells out to rsvg-convert ([ToPDF]).
//
// Completed and eligible courses can be highlighted so a student sees at a
// glance what they may take next.
package render
