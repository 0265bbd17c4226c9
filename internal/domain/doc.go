// Package domain defines the core business entities of the task tracker:
// users, tasks, and the append-only task log that records status transitions.
package domain
