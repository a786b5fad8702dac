// Package checks holds the individual pre-flight checks run by the
// validation feature. Each returns a CheckResult; a check whose backing
// service is not configured passes as skipped.
package checks
