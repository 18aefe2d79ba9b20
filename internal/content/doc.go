// Package content implements the authoring building blocks for the admin uploader:
// in-memory lesson and video drafts, the slug generator, the YouTube reference
// parser, wholesale form validation, and the ordered step-list editor with
// stable per-step identifiers.
//
// Everything here operates on in-memory form state and is free of network or
// filesystem side effects, except for [ReadIntakeDir] which loads dropped-in
// image files for bulk intake.
package content
