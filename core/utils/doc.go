// Package utils provides small conversion helpers.
//
// ToInt tolerates the loosely typed values found in upstream JSON, such as
// the zero-padded string dezenas of the results API.
package utils
