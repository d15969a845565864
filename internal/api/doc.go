// Package api provides the HTTP handlers, request/response models and
// error mapping for the task-manager REST surface.
package api
