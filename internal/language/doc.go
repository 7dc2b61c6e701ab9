// Package language provides unified language code normalization: ISO 639
// conversions, display names, and the artifact filename prefixes used for
// per-language subtitle files.
package language
