// Package locks provides the execution lock that serializes assignment
// work: an in-process semaphore for a single replica and a Redis token lock
// when several replicas share one store.
package locks
