/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for FIS model construction. Every failure wraps exactly one of
these sentinels so callers can classify it with errors.Is.
*/

package fis

import "errors"

var (
	// ErrFormat covers malformed headers, out-of-order sections, wrong field
	// counts, and names not recognized for the active inference type.
	ErrFormat = errors.New("format error")
	// ErrType is returned when a value expected to be numeric, string, or list is not.
	ErrType = errors.New("type error")
	// ErrConsistency is returned when declared counts disagree with parsed
	// ones or a reference points at something undeclared.
	ErrConsistency = errors.New("consistency error")
	// ErrDomain is returned for values outside their allowed domain.
	ErrDomain = errors.New("domain error")
)
