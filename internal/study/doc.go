// Package study implements the study session controller: it composes card
// sessions from a flashcard set, moves through them, records one quality
// rating per studied card and builds the end-of-session report.
//
// Every remote operation goes through the collaborator interfaces declared in
// collaborators.go. The controller never computes SRS fields itself; it only
// recomputes the mastery percentage from the cards the collaborators return.
//
// A Controller is safe for concurrent use. Report steps run on background
// goroutines after a session ends and write their results into the
// SessionReport returned by Controller.Report.
package study
