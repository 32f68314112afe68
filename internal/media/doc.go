// Package media defines the candidate model and the extension tables used to
// classify source-directory entries as images, videos, or unknown files.
package media
