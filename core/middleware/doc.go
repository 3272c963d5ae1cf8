// Package middleware groups the HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key or Bearer) with public path prefixes.
//   - rayid: assigns every request a RayID, stored in locals and echoed in
//     the X-Ray-ID response header.
//
// RayID must be registered first so every later log line carries it.
package middleware
