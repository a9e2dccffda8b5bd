// Package style renders plans and execution results for the terminal.
//
// Three renderers share one interface: a pterm-styled one for interactive
// terminals, a plain one for pipes and NO_COLOR, and a YAML one for
// machine-readable output.
package style
