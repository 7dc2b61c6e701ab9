// Package library discovers media files and derives the artifact paths the
// pipeline reads and writes for each of them.
package library
