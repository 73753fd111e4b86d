// Package services contains stateless domain services: logic that spans more
// than one aggregate and therefore cannot live inside any single one of them.
package services
