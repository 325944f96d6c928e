// Package utils holds small helpers shared across features: whitespace
// normalization of scraped text and the SHA-256 keys used as unique
// identity columns.
package utils
