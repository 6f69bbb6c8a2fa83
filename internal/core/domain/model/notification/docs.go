// Package notification models the durable per-recipient messages written after
// each order transition. They are the fallback a user reads when the live event
// was missed. A notification's message and type never change once created; the
// only mutation is marking it read.
package notification
