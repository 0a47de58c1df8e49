// Package export publishes JSON snapshots of the catalog to S3 compatible storage.
//
// A snapshot holds every live title of one kind rendered with the catalog
// serializer and is written to '{prefix}/{kind}/{unix_nano}-{uuid}.json'. The bucket is
// created on first use, concurrent exports of one kind are coalesced with
// singleflight, and snapshots beyond the retention count are pruned.
//
// # HTTP Endpoints
//
//   - POST /export/:kind       : Write a new snapshot (201).
//   - GET  /export/:kind       : List snapshots, newest first.
//   - GET  /export/:kind/:name : Download one snapshot.
//
// The feature is disabled when storage is not configured.
package export
