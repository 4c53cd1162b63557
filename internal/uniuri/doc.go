// Package uniuri generates random opaque identifiers for records.
package uniuri
