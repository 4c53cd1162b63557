// Package models contains the gorm models of the recipe database and the
// static schema descriptor the resource access layer works from.
package models
