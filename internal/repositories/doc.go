// Package repositories implements sqlite-backed persistence for locally
// stored models: the authenticated [models.Session] that survives between CLI
// invocations, and the [models.Submission] log of completed uploads.
//
// Each repository implements the generic models.Repository interface for its
// entity, with a few entity-specific helpers (Latest, Clear, Recent).
package repositories
