// Package kernel provides the value objects shared by the dispatch domain model.
//
// The package includes:
//   - UUID: identifier of orders, users and notifications
//   - GeoPoint: the courier's last reported position, stored longitude first
//
// Both reject their zero value through Validate so that aggregates never carry
// an identifier or position that was not built by a constructor.
package kernel
