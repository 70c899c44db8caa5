// Package directory is the client for the organization/company directory
// collaborator, plus the snapshot read-through service that keeps the
// app usable when the directory is unreachable.
//
// All collaborator failures surface as errors carrying the
// human-readable message from the response body.
package directory
