// Package api exposes the generation service over HTTP. Handlers decode
// request DTOs, delegate to the service layer, and map service errors to
// status codes without leaking internal detail to clients.
package api
