// Package order provides the Order aggregate and the lifecycle state machine of the
// dispatch service.
//
// The package includes:
//   - Order: the aggregate root holding delivery details, the courier binding,
//     the courier's last position, the delivery code and the lifecycle timestamps
//   - Status: the state machine PENDING -> ASSIGNED -> IN_DELIVERY -> DELIVERED -> RECEIVED
//   - DeliveryCode: the 6-digit secret proving physical hand-off
//   - Domain events recorded on every transition and drained by the unit of work
//
// Key business rules:
//   - A courier is bound if and only if the order has left PENDING
//   - Every transition checks its source state and reports a conflict otherwise,
//     leaving the aggregate untouched
//   - RECEIVED is terminal; there is no cancellation path
//   - Lifecycle timestamps are only ever set forward
package order
