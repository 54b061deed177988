//go:build generate
// +build generate

// Package main provides the central entry point for all code generation in this project.
//
// Usage:
//   go generate -tags generate ./...
//
// This renders the client SDK tree from the descriptors in the input directory, using the
// grouping document written by 'sdkgen group'. Settings come from SDKGEN_* environment
// variables.
//
// The generation logic is implemented in:
// - cmd/sdkgen/ (command line)
// - internal/generator/ (pipeline)
package main

// Render client sources for every API family
//go:generate go run ./cmd/sdkgen render
