// Package links synthesizes deterministic fallback URLs for titles that no
// metadata provider could link, plus the canonical page URLs built from
// provider ids.
//
// Every function is pure: no network access and no failure mode.
package links
