package lint

import "context"

// Parser parses template content into a File.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g. parser/razor) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given (options, path, content) tuple,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw template bytes into a File.
	//
	// Malformed input is not an error: problems in the template are returned
	// as File.Diagnostics next to a best-effort tree. An error means the
	// parse itself could not complete (cancellation, internal failure), and
	// no partial File is returned.
	//
	// The returned File must satisfy:
	//   - file.Path == path
	//   - bytes.Equal(file.Content, content)
	//   - file.Root != nil && file.Root.Content() == string(content)
	Parse(ctx context.Context, path string, content []byte) (*File, error)
}
