// Package middleware groups the Fiber middleware shared by every feature.
//
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's when present,
//     so request logs and payout run logs can be correlated.
//   - auth: rejects requests whose X-API-Key does not match server.api_key.
//     An empty key leaves the API open.
//
// rayid is registered first; swagger routes are registered before auth so the
// documentation stays public.
package middleware
