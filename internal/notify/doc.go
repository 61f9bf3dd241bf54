// Package notify holds the transient, self-expiring message queue surfaced to
// the user after each action. Messages keep insertion order until they are
// dismissed or their TTL elapses; every scheduled expiry is cancellable so a
// dismissed message never races its own timer.
package notify
