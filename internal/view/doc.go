// Package view derives display state from a snapshot of tasks.
//
// Every function here is pure: inputs are never mutated and results are
// freshly allocated slices. Callers re-run the projection after each
// mutation of the task collection.
package view
