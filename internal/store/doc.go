// Package store defines the persistence interfaces for users, tokens and
// tasks, plus the sentinel errors implementations must return. Concrete
// implementations live under internal/platform.
package store
