// Package translate produces the secondary-language SRT by automating the
// translation website with a headless browser. The site wraps Google
// Translate's page widget, hence the goog-te-combo selector.
package translate
