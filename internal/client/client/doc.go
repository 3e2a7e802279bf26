// Package client talks to the license server over gRPC. It keeps the access
// token from the last login and attaches it to outgoing calls, and maps
// gRPC statuses back to the sentinel errors in package common.
package client
