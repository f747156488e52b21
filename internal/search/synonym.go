package search

// Synonyms maps a normalized job-title phrase to alternative phrasings that
// postings commonly use.
var Synonyms = map[string][]string{
	"frontend":   {"front end", "frontend developer", "ui developer"},
	"backend":    {"back end", "server developer"},
	"fullstack":  {"full stack", "full-stack"},
	"devops":     {"site reliability", "platform engineer"},
	"designer":   {"graphic designer", "ui designer", "visual designer"},
	"admin":      {"administration", "staff admin"},
	"qa":         {"quality assurance", "tester"},
	"office boy": {"office", "helper", "staff"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
