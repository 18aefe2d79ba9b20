// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the admin panel's workflow:
//  1. [GateView] : One-time session check on startup
//  2. [LoginView] / [LinkSentView] : Magic-link and OAuth sign-in
//  3. [LessonFormView] : Category, title, preview, and an ordered step editor
//  4. [VideoFormView] : YouTube reference parsing and video metadata
//  5. [SubmitView] / [ResultView] : Real-time submission progress and outcome
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the submission engine, providing
// non-blocking status reporting during uploads.
//
// Form fields accept free text, so editing actions bind ctrl chords, with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
