// Package archive rebuilds zipped QGIS projects (.qgz) deterministically.
//
// A rebuild reads every regular entry, classifies it once as the primary
// project document, an opted-in auxiliary XML entry, or a pass-through
// entry, and writes a fresh archive in ascending name order. Every entry is
// written with the same pinned metadata (see constants.go), so two
// byte-identical inputs always produce byte-identical outputs.
//
// # Entry Handling
//
//   - Primary: the single entry with the project document extension. It is
//     canonicalized; failure aborts the rebuild.
//   - Auxiliary: entries matching an include pattern with an XML-like
//     extension. Canonicalized on a best-effort basis; on failure the
//     original bytes are kept and a warning is logged unless
//     Options.StrictAuxiliary is set.
//   - Passthrough: everything else, copied byte for byte.
//
// Directory entries are not carried over.
//
// # Example Usage
//
//	rebuilder := archive.NewRebuilder(canonical.New(), archive.Options{Logger: logger})
//	result, err := rebuilder.Rebuild(data, qgistidy.DefaultRules())
//	if err != nil {
//	    return err
//	}
//	if result.Changed {
//	    // write result.Archive
//	}
package archive
