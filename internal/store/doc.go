// Package store defines the persistence interfaces for flashcard sets, cards
// and study session logs, independent of the SQL backend that implements them.
package store
