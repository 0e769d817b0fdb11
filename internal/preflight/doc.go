// Package preflight provides readiness checks for the filesystem paths and
// dataset source an export depends on.
//
// The CLI "fleursexport preflight" command prints every Result, and the
// export command runs the same checks before taking the run lock so a
// doomed run fails before any language is touched.
package preflight
