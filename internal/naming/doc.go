// Package naming builds the file names used when renaming split volumes:
// the zero-padded name the splitter writes, the label slug, and the final
// "<index>_<slug>.<ext>" output name, plus the policy applied when that
// output name already exists in the destination.
package naming
