// Package pipeline runs one extraction: read the atlas labels, split the
// atlas into a scratch directory, then move each labeled volume into the
// output directory under its human-readable name.
//
// Every error is fatal to the run. Files already moved stay where they are;
// the scratch directory is removed on every exit path.
package pipeline
