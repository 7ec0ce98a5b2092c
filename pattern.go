package dockb

import (
	"regexp"
	"strings"
)

// The pattern pass scans raw page text (HTML included) for textual mentions
// of API endpoints. It is deliberately crude: the structural pass handles
// well-formed documentation, this pass catches endpoints mentioned in prose,
// code samples, and pages whose markup the structural pass cannot read.

var (
	// verbPathRE matches "GET /path/to/endpoint" style mentions, including
	// path-parameter placeholders like {id}.
	verbPathRE = regexp.MustCompile(`(?i)\b(GET|POST|PUT|DELETE|PATCH)\s+(/[\w\-{}./]+)`)

	// keyValueRE matches "endpoint: /path", "url: /path", "path: /path"
	// key-value mentions.
	keyValueRE = regexp.MustCompile(`(?i)\b(?:endpoint|url|path)\s*:\s*(/[\w\-{}./]+)`)
)

// descriptionMinLen is the length threshold for a nearby line to qualify as
// a best-effort description.
const descriptionMinLen = 20

// descriptionWindow is how many lines around a match are scanned for a
// description.
const descriptionWindow = 3

// PatternPass scans page text for endpoint mentions and returns one
// candidate per distinct path, keyed by the path. Verbs are normalized to
// uppercase. Key-value mentions with no verb produce records with no HTTP
// method, which is legal.
func PatternPass(pageText string, sourceURL string) []Candidate {
	lines := strings.Split(pageText, "\n")

	var candidates []Candidate
	seen := make(map[string]bool)

	add := func(verb, path string, lineIdx int) {
		key := NormalizeKey(path)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, Candidate{
			Pass: PassPattern,
			Record: MethodRecord{
				Key:         key,
				HTTPMethod:  strings.ToUpper(verb),
				Endpoint:    key,
				Description: nearbyDescription(lines, lineIdx),
				SourceURL:   sourceURL,
			},
		})
	}

	for i, line := range lines {
		for _, m := range verbPathRE.FindAllStringSubmatch(line, -1) {
			add(m[1], m[2], i)
		}
		for _, m := range keyValueRE.FindAllStringSubmatch(line, -1) {
			add("", m[1], i)
		}
	}

	return candidates
}

// nearbyDescription scans lines around the match for the first sufficiently
// long line that looks like prose rather than markup or a URL.
func nearbyDescription(lines []string, idx int) string {
	lo := max(idx-descriptionWindow, 0)
	hi := min(idx+descriptionWindow, len(lines)-1)

	for i := lo; i <= hi; i++ {
		if i == idx {
			continue
		}
		line := strings.TrimSpace(lines[i])
		if len(line) < descriptionMinLen {
			continue
		}
		if looksLikeMarkup(line) {
			continue
		}
		return line
	}
	return ""
}

// looksLikeMarkup reports whether a line contains markup or URL punctuation
// that disqualifies it as a prose description.
func looksLikeMarkup(line string) bool {
	return strings.ContainsAny(line, "<>{}|") ||
		strings.Contains(line, "://") ||
		strings.Contains(line, "](")
}
