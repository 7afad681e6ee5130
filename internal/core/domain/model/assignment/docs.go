// Package assignment holds the value types exchanged with the batch
// executor: proposals, priorities and the batch result.
package assignment
