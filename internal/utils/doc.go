// Package utils provides the low-level helpers shared by the fieldex
// providers: JSON POST and plain GET round-trips with span events
// ([DoPostSync], [DoGet]), a typed error for non-2xx responses
// ([StatusError]) and string helpers for logs and CLI output.
package utils
