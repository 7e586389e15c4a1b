package model

// FormData maps field ids to the value entered by the user.
type FormData map[string]string

// Get returns the value for id, or the empty string when absent.
func (d FormData) Get(id string) string {
	if d == nil {
		return ""
	}
	return d[id]
}

// Clone returns an independent copy. A nil map clones to an empty one.
func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// ErrorMap maps field ids to a human readable validation message.
type ErrorMap map[string]string

// Empty reports whether there are no errors.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Clone returns an independent copy. A nil map clones to an empty one.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}
