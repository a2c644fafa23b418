// Package splitter runs the external volume splitter (FSL fslsplit) that
// writes one file per atlas volume, captures its output, and turns a failed
// run into a typed error carrying that output.
//
// The splitter is invoked as
//
//	fslsplit <atlas> <scratch>/
//
// and writes <scratch>/0000.<ext>, <scratch>/0001.<ext>, ... one per volume.
package splitter
