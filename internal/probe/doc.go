// Package probe asks FSL how many volumes an atlas image holds, using a
// single fslnvols call. The count drives dry-run planning and diagnostics;
// the real run never depends on it.
package probe
