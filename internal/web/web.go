// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the admin panel workflow using server-side rendering
// with HTMX for dynamic updates. Each screen corresponds to a template and handler:
//
//  1. Sign-in: Magic-link email form plus provider buttons
//  2. Lesson Form: Category select, title/slug, preview upload, step editor
//  3. Video Form: YouTube reference parsing and metadata fields
//  4. Progress Monitor: SSE (Server-Sent Events) streaming upload progress
//  5. Results Display: Saved record summary
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Service Integration: Uses the same services.Auth/Storage/Table and tasks.SubmitEngine as the TUI
//   - Session Management: Cookie-based sessions holding the backend access token
//   - SSE Handler: Streams real-time progress during lesson submissions
//
// Routes
//
//	GET  /                     → Lesson form (requires auth)
//	GET  /video                → Video form (requires auth)
//	GET  /auth/login           → Sign-in screen
//	POST /auth/link            → Send magic link
//	GET  /auth/callback        → OAuth completion
//	POST /lesson/steps         → HTMX partial: append/remove/reorder steps
//	POST /lesson/submit        → Start submission, return SSE endpoint
//	GET  /lesson/{id}/stream   → SSE progress stream
//	POST /video/parse          → HTMX partial: parsed reference state
//	POST /video/submit         → Insert video record
//
// Templates
//
//   - base.html: Layout with panel tabs, auth status
//   - login.html: Email form plus provider buttons
//   - lesson.html: Form with hx-post on the step editor
//   - steps.html: Partial template for the ordered step list
//   - progress.html: SSE consumer with per-step progress
//   - video.html: Form with hx-post on the URL field
//
// # State Management
//
// Unlike the TUI's in-memory drafts, the web app persists state in:
//   - Session cookies: Backend access token, email
//   - Draft records: Step order and captions across requests
//   - In-memory channels: SSE connections for active submissions
//
// # Progress Streaming
//
// Submission progress uses Server-Sent Events:
//  1. POST /lesson/submit validates the draft, returns a submission ID
//  2. Client opens SSE connection to /lesson/{id}/stream
//  3. Handler launches goroutine running SubmitEngine.SubmitLesson
//  4. Progress channel updates stream as SSE events
//  5. On completion, send "done" event with the saved folder
//
// Authentication Flow
//
//  1. User visits /, redirected to /auth/login when no session cookie exists
//  2. Magic link or OAuth dance stores tokens in the session
//  3. Session middleware validates tokens on protected routes
//  4. Expired tokens trigger a fresh sign-in
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server and SSE
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup with route registration
//  2. Template structure with HTMX integration
//  3. Session middleware for auth state
//  4. Lesson form handler with draft persistence
//  5. Step editor partials (append, delete confirm, reorder)
//  6. Bulk image intake via multipart upload
//  7. SSE handler streaming submission progress
//  8. Video parse partial and submit handler
//  9. Auth handlers wrapping the existing magic-link and OAuth flows
//  10. Error handling mirroring the wholesale form validators
//
// # Testing Strategy
//
// Use httptest:
//   - Mock services.Auth/Storage/Table for backend calls
//   - Mock tasks.SubmitEngine for submissions
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting
package web
