package models

// RemovePhoto returns photos without ref. The input slice is not modified.
func RemovePhoto(photos []string, ref string) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		if p != ref {
			out = append(out, p)
		}
	}
	return out
}

// SelectCover moves ref to the front, keeping the relative order of the rest.
// If ref is not in the list the list is returned unchanged.
func SelectCover(photos []string, ref string) []string {
	found := false
	for _, p := range photos {
		if p == ref {
			found = true
			break
		}
	}
	if !found {
		return append([]string(nil), photos...)
	}

	return append([]string{ref}, RemovePhoto(photos, ref)...)
}
