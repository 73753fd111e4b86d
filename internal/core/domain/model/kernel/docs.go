// Package kernel provides core domain primitives shared by every aggregate in
// the dispatch system. It implements fundamental building blocks following
// Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A validated latitude/longitude pair
//   - Address: A physical pickup or delivery address with coordinates
//   - Money: A non-negative monetary amount backed by arbitrary-precision decimals
//
// These primitives enforce domain invariants at construction time, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
