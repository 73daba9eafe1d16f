package jsonbind

// IssueAt creates an Issue at the given JSON Pointer path with the provided
// code, message and params map. This is a convenience helper to improve
// readability at call sites with many parameters.
func IssueAt(path, code, msg string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: msg, Params: params}
}
