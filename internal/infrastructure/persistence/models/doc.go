// Package models contains GORM persistence models for the identity
// context. UserModel keeps password hashes and account flags out of the
// identity.User aggregate; mappers convert in both directions.
//
// The recipe context takes the lighter route: its aggregates carry gorm
// tags directly and are persisted as-is, since their fields map 1:1 to
// columns and the join tables are plain associations.
package models
