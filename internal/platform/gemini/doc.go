// Package gemini writes narrative session reports with Google's Gemini API.
//
// ReportGenerator implements generation.ReportGenerator. It renders the
// performance list into a prompt, calls the model with exponential backoff
// for transient failures, and maps safety blocks and empty answers to the
// sentinels in the generation package.
package gemini
