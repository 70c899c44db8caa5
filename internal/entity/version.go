package entity

// CurrentSchemaVersion is the version written into every persisted envelope.
//
// Version history:
//   0 - Legacy unversioned JSON (no envelope)
//   1 - Envelope introduced; sessions carried RFC 3339 createdAt strings and
//       no status field; the profile used a "store" field
//   2 - createdAt as unix milliseconds, explicit session status, "storeName"
const CurrentSchemaVersion = 2
