// Package save implements the stowsave command: resolve the two paths,
// reconcile them, build the plan and execute it.
package save
