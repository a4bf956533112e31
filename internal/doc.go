// Package internal runs lint rules over problem banks.
//
// Engine: loads a problem file, runs every enabled rule on each problem
// concurrently and returns the issues in bank order. Rules are configured
// by name and severity from the rules section of the configuration file.
//
// LintRule: the contract every rule implements. The rules themselves live
// in the lints package; this package only adapts them.
//
// Cache: keeps the issues of unchanged files between runs.
//
// Watcher: re-lints problem files as they are saved.
//
// Problems may silence rules individually through their nolint field.
package internal
