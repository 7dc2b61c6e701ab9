// Package bilingual pairs two same-length single-language tracks into one
// bilingual track, strictly by ordinal position, failing loudly on any
// count mismatch.
package bilingual
