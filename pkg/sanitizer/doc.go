// Package sanitizer turns untrusted text into plain text for console output.
package sanitizer
