// Package domain contains the flashcard entities, the quality rating scale and
// the mastery rule shared by the study client and the API server. It has no
// knowledge of storage or transport.
package domain
