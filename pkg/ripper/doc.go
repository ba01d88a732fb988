// Package ripper implements the channel download workflow.
//
// A run resolves the channel, walks its history through a Source, files every
// attachment under <dir>/<channel>/<category>/ and returns a Result. A file
// that already exists at its target path is never fetched again, so repeated
// runs only pick up new attachments.
package ripper
