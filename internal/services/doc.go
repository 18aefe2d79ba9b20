// Package services defines the contracts for the hosted backend's auth,
// storage, and table APIs, plus their Supabase-compatible REST
// implementations.
//
// The three concerns are deliberately separate interfaces so workflows take
// exactly the collaborators they touch and tests substitute fakes per
// concern:
//
//   - [Auth] : session lookup, magic-link and OAuth provider sign-in, sign-out
//   - [Storage] : object upload into a fixed bucket
//   - [Table] : structured record inserts
//
// Absence of a session is a normal (nil, nil) result from [Auth.GetSession],
// never an error; callers treat it as a redirect to login.
package services
