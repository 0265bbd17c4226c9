// Package api provides HTTP handlers for the task tracker API.
// Handlers decode and validate requests, call the services, and translate
// service errors into HTTP status codes without leaking internal detail.
package api
