// Package database owns the SQLite connection and schema migration.
// Entity-specific repositories live in subpackages (users, audit, outbox),
// each constructed with the shared *gorm.DB.
package database
