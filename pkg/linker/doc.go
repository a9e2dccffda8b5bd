// Package linker runs the external symlink-farm tool, GNU stow by default,
// as a subprocess.
package linker
