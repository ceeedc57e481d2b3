// Package checks holds the individual artifact checks run by the integrity feature.
package checks
