package astsrc

// Options carries per-translation-unit build context that the frontend does
// not need to parse source but preserves for diagnostics, mirroring the
// resource-dir/include-path plumbing the original tool threads through its
// compiler invocation even though this tool runs no preprocessor.
type Options struct {
	// Includes lists the -I search paths recorded for this translation
	// unit's compile command.
	Includes []string
	// Defines lists the -D macro definitions recorded for this
	// translation unit's compile command.
	Defines []string
}
