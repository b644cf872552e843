// Package api adapts HTTP requests to the flashcard, review, session and
// report services. Handlers decode and validate JSON bodies, read the
// authenticated user from the request context and map service errors to
// status codes without leaking internal detail.
package api
