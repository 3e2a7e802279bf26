// Package rpc defines the LicenseService wire contract shared by the server
// and the client: message types, a JSON codec for gRPC, the service
// descriptor and a client stub.
package rpc
