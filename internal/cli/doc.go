// Package cli implements the codec-generator command line: gen writes
// codecs, check verifies they are current and dump prints the compiled
// model.
package cli
