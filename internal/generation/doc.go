// Package generation defines the boundary between the study service and the
// language model that writes end-of-session narrative reports.
package generation
