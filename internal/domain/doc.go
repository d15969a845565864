// Package domain defines the core business entities of the task manager
// (users, tasks) along with their validation rules and sentinel errors.
// Entities are plain structs; persistence concerns live in the store
// packages.
package domain
