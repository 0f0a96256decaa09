// Package events decouples the service layer from background task
// creation. Services emit a TaskRequestEvent after their transaction
// commits; the task factory registered on the emitter translates it
// into a persisted task. Neither side imports the other.
package events
