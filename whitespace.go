package htmlfmt

// whitespace lists the characters that are whitespace for formatting purposes, true for the ones that break the line.
var whitespace = map[byte]bool{
	' ':  false,
	'\t': false,
	'\v': false,
	0:    false,
	'\n': true,
	'\r': true,
}

// whitespaceKind returns whether c is whitespace and if so whether it breaks the line.
func whitespaceKind(c byte) (lineBreak, ok bool) {
	lineBreak, ok = whitespace[c]
	return
}

func isWhitespace(c byte) bool {
	_, ok := whitespace[c]
	return ok
}

func trimWhitespace(s string) string {
	start, end := 0, len(s)
	for start < end && isWhitespace(s[start]) {
		start++
	}
	for start < end && isWhitespace(s[end-1]) {
		end--
	}
	return s[start:end]
}

// compressWhitespace replaces every run of whitespace by a single space.
func compressWhitespace(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		if !isWhitespace(s[i]) {
			if b != nil {
				b = append(b, s[i])
			}
			continue
		}

		j := i + 1
		for j < len(s) && isWhitespace(s[j]) {
			j++
		}
		if b == nil {
			if j == i+1 && s[i] == ' ' {
				continue // nothing to replace yet
			}
			b = make([]byte, i, len(s))
			copy(b, s[:i])
		}
		b = append(b, ' ')
		i = j - 1
	}
	if b == nil {
		return s
	}
	return string(b)
}
