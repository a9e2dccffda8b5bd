// Package reconcile validates where a path is being saved to and works out
// where it lands inside the package directory.
//
// Every check is read-only. Reconcile runs them in a fixed order so that the
// first failing precondition is the one reported, and nothing on disk is
// touched before the whole placement is known to be valid.
package reconcile
