// Package integrity reports on the infrastructure the catalog depends on.
//
// # Checks Provided
//
//   - Schema: Compares the titles, genres and title_genres tables with the GORM
//     models. Missing tables and missing columns are reported per table.
//   - Storage: Checks that the export bucket exists and counts the exports held
//     for each title kind. Reports "disabled" when object storage is off.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//
// The migrate command runs the schema check after applying migrations.
package integrity
