// Package transcriber shells out to the whisper CLI, once per configured
// decoding pass, producing one raw SRT per pass for the merger.
package transcriber
