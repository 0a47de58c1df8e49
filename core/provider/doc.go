// Package provider contains the clients for the external metadata providers.
//
//   - Jikan: anime catalog (description, poster, year, genres, streaming and IMDb links).
//   - TMDB: movie database used as the streaming catalog and as a second IMDb source.
//   - RottenTomatoes: review aggregator, resolved by parsing its search page with goquery.
//
// Clients are configured explicitly through Config and share one *http.Client with a
// request timeout. They never retry and never cache. Every failure (transport, non-2xx,
// undecodable or empty payload) comes back as a *Error; deciding to degrade is left
// to the reconcile engine.
package provider
