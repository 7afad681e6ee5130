// Package audit defines the append-only records left behind by assignment
// activity: alerts for rejected work and workflow logs describing every
// single or batch assignment step by step.
package audit
