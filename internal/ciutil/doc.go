// Package ciutil detects the CI provider a process is running under.
//
// The logger uses it to decorate records with provider metadata, and tests
// that need live backing services read its environment variable names to
// decide whether to run or skip.
package ciutil
