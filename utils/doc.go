// Package utils holds small generic helpers shared across ovel packages.
package utils
