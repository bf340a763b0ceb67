package semantic

import "strings"

// splitWords chunks text into overlapping word windows. Every window except
// possibly the last holds exactly size words, consecutive windows share
// overlap words, and the loop stops once a window reaches the final word. A
// text of W words therefore yields ceil((W-overlap)/(size-overlap)) chunks
// whenever W exceeds size, and exactly one chunk otherwise.
func splitWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 || len(words) <= size {
		return []string{strings.Join(words, " ")}
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	step := size - overlap
	var chunks []string
	for i := 0; ; i += step {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end >= len(words) {
			break
		}
	}
	return chunks
}
