// Package rating extracts the embedded quality-rating tag from media files.
//
// Two decoders exist: a built-in bounded scanner for XMP packets and an
// exiftool subprocess for formats the scanner cannot read. The Service
// wrapper normalizes every decoder failure to an absent rating so that a
// single unreadable file never aborts a run.
package rating
