// Package models defines domain entities and persistence interfaces for the lessonctl admin uploader.
//
// The package contains two categories of types:
//
// 1. Record shapes: structs serialized into the backend's table API
//   - [LessonRecord] : Finished lesson with preview path and ordered steps
//   - [StepRecord] : One captioned step image within a lesson
//   - [VideoRecord] : Curated YouTube reference with multi-language titles
//
// 2. Persistent Entities: local database-backed models with full lifecycle management
//   - [Session] : Authenticated backend session persisted between CLI runs
//   - [Submission] : Log entry for a completed lesson or video upload
//
// All persistent entities implement the Model interface providing ID generation, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
