// Package draws serves official Mega-Sena draw results.
//
// Confirmed results flow through reconcile.ResultCache, which consults a
// TieredStore before calling the provider:
//
//	redis     shared between instances (optional)
//	database  the 'draws' table
//	archive   one JSON object per draw in the storage bucket (optional)
//
// A hit in a slower tier is copied into the faster ones. Only confirmed
// results are ever written; pending and failed lookups are retried.
package draws
