// Package services holds the server's business logic: account credentials,
// the license lifecycle and the signup/login gateway. Services return the
// sentinel errors from package common; the transport layer maps them.
package services
