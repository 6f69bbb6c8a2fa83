// Package services holds domain logic that spans the Order aggregate and the
// user directory: who may be bound to an order as its courier, and on whose
// initiative.
package services
