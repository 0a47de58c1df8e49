// Package reconcile merges the three sources of a title's fields: the stored
// record, the user's request and the metadata providers.
//
// # Precedence
//
// Every field is resolved independently:
//
//	links:    user > stored non-empty > provider > synthesized fallback
//	scalars:  user > stored non-empty > provider > empty
//	genres:   user list > stored non-empty set > provider list > unchanged
//
// Providers and fallbacks are only consulted on create and on an explicit
// enrich. Updates merge user values over stored ones and never touch the network.
// A provider is never called for a field that is already settled.
//
// # Failure handling
//
// Provider errors are logged at warn level, counted in metrics and otherwise
// ignored; the field falls through to the next layer. Reconcile itself cannot fail.
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.NewSources(jikan, rt, tmdb), logger, m)
//	res := engine.Reconcile(ctx, media.KindMovie, nil, reconcile.Partial{Name: &name}, true)
package reconcile
