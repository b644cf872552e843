// Package service implements the operations behind the study API: set and card
// management, SRS review updates, session logging and report generation.
// Services own authorization checks and transaction boundaries.
package service
