// Package integrity provides system health checks.
//
// # Checks Provided
//
//   - Schema: the bet and draw tables carry every expected column.
//   - Structure: the storage bucket exists and holds the draws/ folder.
//   - Archive: every draw in the database also has an archive object.
//
// Bucket checks report "skipped" when no storage is configured.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/structure : Runs the structure check (supports ?fix=true).
//   - GET /integrity/archive : Runs the archive check (supports ?fix=true).
package integrity
