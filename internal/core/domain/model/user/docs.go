// Package user holds the read model of the accounts the dispatch core consults:
// admins who receive broadcast notifications, clients who own orders and
// couriers ("livreurs") who carry them.
//
// Account management lives elsewhere; this package only answers the questions
// the lifecycle engine asks, chiefly whether a courier is eligible for assignment.
package user
