// Package provision holds the primitives shared by every provisioning step:
// the error taxonomy that maps step failures to exit codes, and the small
// filesystem helpers the steps use for their existence checkpoints and
// atomic rewrites.
//
// # Error Kinds
//
//   - KindDownload: origin unreachable, timed out or returned a non-2xx status
//   - KindExtraction: corrupt or unsafe release archive
//   - KindFilesystem: a directory or file could not be created, moved or copied
//   - KindProvisioning: the vendor scaffolding command exited non-zero
//   - KindConfigParse: broker.xml is not well-formed
//   - KindConfigSchema: an expected broker.xml node is absent
//
// Every step error is fatal. Callers match on kinds with IsKind or errors.As:
//
//	var perr *provision.Error
//	if errors.As(err, &perr) && perr.Kind == provision.KindDownload {
//	    ...
//	}
package provision
