// Package link provides the serial frame protocols spoken by the mirror.
package link
