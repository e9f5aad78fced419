package qualitative

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"content_auditor/internal/domain"
)

// sectionKeys lists accepted response keys per section, preferred first.
var sectionKeys = map[domain.Check][]string{
	domain.CheckMisinformation:     {"misinformation", "misinformationRisk", "misinformation_risk"},
	domain.CheckRecency:            {"recency"},
	domain.CheckLogicalConsistency: {"logicalConsistency", "logical_consistency", "logic"},
	domain.CheckSEO:                {"seo", "SEO"},
	domain.CheckReadability:        {"readability"},
}

// Parse decodes a model answer section by section. Any section that is
// disabled, missing or undecodable is neutral. The second return lists the
// problems found, for logging.
func Parse(raw string, checks domain.EnabledChecks) (domain.QualitativeResult, []string) {
	result := domain.NeutralQualitativeResult()
	var problems []string

	doc, ok := extractObject(raw)
	if !ok {
		return result, []string{"no JSON object in response"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		return result, []string{"undecodable response: " + err.Error()}
	}

	targets := map[domain.Check]*domain.QualitativeSection{
		domain.CheckMisinformation:     &result.Misinformation,
		domain.CheckRecency:            &result.Recency,
		domain.CheckLogicalConsistency: &result.LogicalConsistency,
		domain.CheckSEO:                &result.SEO,
		domain.CheckReadability:        &result.Readability,
	}

	for _, check := range qualitativeChecks {
		if !checks.Enabled(check) {
			continue
		}
		rawSection, found := lookup(fields, sectionKeys[check])
		if !found {
			problems = append(problems, "missing "+string(check))
			continue
		}
		section, bad := decodeSection(check, rawSection)
		*targets[check] = section
		problems = append(problems, bad...)
	}

	return result, problems
}

// decodeSection reads score, issues and recommendations independently. A
// field that cannot be decoded keeps its neutral value.
func decodeSection(check domain.Check, raw json.RawMessage) (domain.QualitativeSection, []string) {
	out := domain.NeutralSection()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, []string{"malformed " + string(check)}
	}

	var problems []string
	if score, ok := decodeScore(fields["score"]); ok {
		out.Score = score
	} else {
		problems = append(problems, "malformed "+string(check)+".score")
	}
	if issues, ok := decodeStrings(fields["issues"]); ok {
		out.Issues = issues
	} else {
		problems = append(problems, "malformed "+string(check)+".issues")
	}
	if recs, ok := decodeStrings(fields["recommendations"]); ok {
		out.Recommendations = recs
	} else {
		problems = append(problems, "malformed "+string(check)+".recommendations")
	}
	return out, problems
}

// decodeScore accepts a JSON number or a numeric string.
func decodeScore(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return clampScore(n), true
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return clampScore(n), true
}

// decodeStrings treats an absent or null list as empty.
func decodeStrings(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, true
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}, false
	}
	return nonNil(out), true
}

func lookup(fields map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok && len(v) > 0 && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

// extractObject returns the outermost JSON object in s, repairing a
// truncated tail when needed.
func extractObject(s string) (string, bool) {
	s = stripFences(s)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	s = s[start:]

	if end := strings.LastIndexByte(s, '}'); end >= 0 && json.Valid([]byte(s[:end+1])) {
		return s[:end+1], true
	}
	return repair(s)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}

// repair closes a truncated JSON document. It first closes whatever is
// open at the end of input; failing that it cuts back to the latest
// top-level-safe comma whose prefix closes into valid JSON.
func repair(s string) (string, bool) {
	type cut struct {
		at      int
		closers string
	}

	var (
		stack    []byte
		cuts     []cut
		inString bool
		escaped  bool
	)

	closers := func() string {
		b := make([]byte, len(stack))
		for i := range stack {
			b[i] = stack[len(stack)-1-i]
		}
		return string(b)
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
			cuts = append(cuts, cut{at: i + 1, closers: closers()})
		case '[':
			stack = append(stack, ']')
			cuts = append(cuts, cut{at: i + 1, closers: closers()})
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return s[:i+1], json.Valid([]byte(s[:i+1]))
			}
		case ',':
			cuts = append(cuts, cut{at: i, closers: closers()})
		}
	}

	tail := strings.TrimSpace(s)
	if inString {
		if escaped {
			tail = tail[:len(tail)-1]
		}
		tail += `"`
	}
	if candidate := tail + closers(); json.Valid([]byte(candidate)) {
		return candidate, true
	}

	for i := len(cuts) - 1; i >= 0; i-- {
		candidate := s[:cuts[i].at] + cuts[i].closers
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

func clampScore(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
