// Package catalog implements the anime series and movie catalog.
//
// Series and movies share one 'titles' table discriminated by kind. Creating a
// title runs the reconcile engine in create mode so missing fields are filled
// from the metadata providers, and a title that already exists under the exact
// same name is updated instead of duplicated. Updates never consult providers;
// POST /:id/enrich re-runs enrichment on demand.
//
// # Components
//
//   - Store: gorm persistence, genre get-or-create, filtered pagination.
//   - Service: create, update, enrich and delete orchestration.
//   - Handler: fiber routes and status codes.
//   - Serializer: read shapes; 'about' is wrapped at 100 columns.
//
// # HTTP Endpoints
//
// Each route exists under /anime_series and /movie:
//
//   - GET    /        : List (filters: name|movie_name, genre, released_after, released_before, search, ordering, page).
//   - POST   /        : Create one title or an array of titles (200).
//   - GET    /:id     : Get one title.
//   - POST   /:id     : Rejected with 400.
//   - PATCH  /:id     : Partial update (202).
//   - PUT    /:id     : Full update, name required (202).
//   - DELETE /:id     : Soft delete (200).
//   - POST /:id/enrich : Re-run enrichment (202).
package catalog
