// Package util provides common string and buffer helpers.
package util
