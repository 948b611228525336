// Package service holds the memory business rules: ownership and visibility
// checks, id and timestamp assignment, and publish notifications. Handlers
// call it with validated payloads; it talks to storage through MemoryStore.
package service
