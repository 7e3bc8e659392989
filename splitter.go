package ollapdf

import "strings"

// Default chunking parameters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// splitSeparators are tried in order; the empty string is a hard character
// cut used only when no structural separator is present.
var splitSeparators = []string{"\n\n", "\n", " ", ""}

// SplitText splits text into chunks of at most size characters, preferring
// paragraph, then line, then word boundaries, and overlapping consecutive
// chunks by up to overlap characters to preserve context across boundaries.
func SplitText(text string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	var out []string
	for _, chunk := range splitRecursive(text, size, overlap, splitSeparators) {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func splitRecursive(text string, size, overlap int, seps []string) []string {
	if len(text) <= size {
		return []string{text}
	}

	// Pick the first separator present in the text.
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return splitWindows(text, size, overlap)
	}

	// SplitAfter keeps separators so no characters are lost on merge.
	var parts []string
	for _, p := range strings.SplitAfter(text, sep) {
		if len(p) > size {
			parts = append(parts, splitRecursive(p, size, overlap, rest)...)
		} else if p != "" {
			parts = append(parts, p)
		}
	}
	return mergeParts(parts, size, overlap)
}

// splitWindows hard-cuts text into fixed windows stepping by size-overlap.
func splitWindows(text string, size, overlap int) []string {
	step := size - overlap
	var out []string
	for start := 0; start < len(text); start += step {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}

// mergeParts greedily packs parts into chunks of at most size characters,
// seeding each new chunk with the tail of the previous one for overlap.
// Each part is guaranteed to be at most size characters long.
func mergeParts(parts []string, size, overlap int) []string {
	var out []string
	cur := ""
	for _, p := range parts {
		if cur != "" && len(cur)+len(p) > size {
			out = append(out, cur)
			cur = ""
			if overlap > 0 {
				tail := out[len(out)-1]
				if len(tail) > overlap {
					tail = tail[len(tail)-overlap:]
				}
				// Skip the overlap seed when it would overflow the chunk.
				if len(tail)+len(p) <= size {
					cur = tail
				}
			}
		}
		cur += p
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
