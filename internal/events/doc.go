// Package events carries study-session notifications from the controller to
// whoever renders them.
//
// The controller emits an Event for each observable step of a session:
// composition, each confirmed grade, session completion and the outcome of
// the narrative report. Handlers register with an EventEmitter and never see
// the controller itself.
package events
