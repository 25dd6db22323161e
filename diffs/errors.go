package diffs

// DiffParsingError is the only error GetDiffs returns. The wrapped cause
// (not a repository, no commits, git failure) is for logs; callers should
// treat every DiffParsingError the same way.
type DiffParsingError struct {
	Path string
	Err  error
}

func (e *DiffParsingError) Error() string {
	if e.Err == nil {
		return "failed to parse diffs of " + e.Path
	}
	return "failed to parse diffs of " + e.Path + ": " + e.Err.Error()
}

func (e *DiffParsingError) Unwrap() error {
	return e.Err
}
