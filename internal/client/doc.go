// Package client talks to the study API over HTTP. Client implements every
// collaborator interface of the study controller, so a terminal session can
// run against a remote server.
package client
