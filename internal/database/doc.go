// Package database opens the catalog database, runs migrations and seeds
// the administrator identity. Entity-specific operations live in the
// books, people and themes subpackages.
package database
