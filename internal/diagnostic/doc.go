// Package diagnostic provides the positioned errors and the warning collector
// shared by the directive parser, the union analyzer and the generator.
//
// Key capabilities:
//   - One Code per failure kind, matchable with errors.Is
//   - Source positions in "file:line:col: message" form
//   - Warnings and infos that never abort generation
package diagnostic
