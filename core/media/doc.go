// Package media defines the title kinds (series and movie) shared by the
// provider clients, the link synthesizer and the reconcile engine.
package media
