// Package domain defines the core business entities and errors for
// article generation: requests, generated documents, image results,
// and the final response artifact.
package domain
