// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock carries optional Fn fields to override
// behavior per test case, falling back to a simple in-memory default
// implementation.
package mocks
