// Package consumer rewrites the Candlepin configuration file so the
// application stops running its embedded audit broker and dials the
// provisioned Artemis instance instead.
//
// The file is a flat key=value properties file. Only the two audit broker
// keys are managed; every other line, including comments and blank lines,
// is preserved verbatim. Keys are matched exactly, so a property that merely
// shares a prefix with a managed key is left alone.
package consumer
