// Package genre normalizes heterogeneous genre input.
//
// Clients may send genres as plain strings or as {"name": ...} objects. Input
// decodes both into one shape at the boundary, and Normalize reduces a list to
// distinct, non-empty Refs. Turning Refs into stored rows (get-or-create keyed by
// the unique name) is done by the catalog store.
package genre
