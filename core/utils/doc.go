// Package utils provides value conversion for JSON documents whose numeric
// fields arrive as numbers from some servers and as strings from others.
package utils
