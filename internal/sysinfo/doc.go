// Package sysinfo answers platform capability questions, resolved once
// at startup and passed along as plain values.
package sysinfo
