// Package srt is the textual boundary of the subtitle pipeline: a lenient
// parser for raw transcription output and a strict writer for normalized and
// bilingual tracks, in the de facto SRT interchange format.
package srt
