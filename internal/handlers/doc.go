// Package handlers provides the HTTP handlers of the gallery server.
//
// It includes handlers for:
//   - Gallery pages, recursive or flat, with sorting and pagination
//   - Image transfers confined to the gallery root
//   - Health, liveness, readiness and version probes
//
// Every path taken from a request goes through a confine.Resolver before
// the filesystem is touched. Rejections are answered with 403, missing
// paths with 404. Directory contents are read fresh on every request.
package handlers
