package wsendpoint

import (
	"fmt"
	"strings"

	"github.com/grafana/regexp"
)

// Pattern matches request paths for endpoint registration. Segments are
// separated by "/"; "{name}" captures a single segment, "*" matches a single
// segment without capturing, and "**" matches any remainder.
type Pattern struct {
	str    string
	chunks []chunk
	regExp *regexp.Regexp
}

func NewPattern(patternStr string) (*Pattern, error) {
	chunks, err := parsePatternChunks(patternStr)
	if err != nil {
		return nil, err
	}

	patternRegExp, err := regExpFromChunks(chunks)
	if err != nil {
		return nil, err
	}

	return &Pattern{
		str:    patternStr,
		chunks: chunks,
		regExp: patternRegExp,
	}, nil
}

// Match reports whether the path matches and returns the captured params.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	groups := p.regExp.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}

	var params map[string]string
	for i, name := range p.regExp.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[name] = groups[i]
	}

	return params, true
}

func (p *Pattern) String() string {
	return p.str
}

type chunkKind int

const (
	static chunkKind = iota
	dynamic
	wildcard
)

type chunk struct {
	kind    chunkKind
	key     string
	pattern string
}

var paramNameRegExp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func parsePatternChunks(patternStr string) ([]chunk, error) {
	parts := strings.Split(patternStr, "/")
	chunks := make([]chunk, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}
		ch := chunk{kind: static}
		switch {
		case part == "*":
			ch.kind = wildcard
			ch.pattern = "[^/]+"
		case part == "**":
			ch.kind = wildcard
			ch.pattern = ".*"
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			key := part[1 : len(part)-1]
			if !paramNameRegExp.MatchString(key) {
				return nil, fmt.Errorf("invalid path parameter name %q", key)
			}
			ch.kind = dynamic
			ch.key = key
			ch.pattern = fmt.Sprintf("(?P<%s>[^/]+)", key)
		default:
			ch.pattern = regexp.QuoteMeta(part)
		}

		chunks = append(chunks, ch)
	}

	return chunks, nil
}

func regExpFromChunks(chunks []chunk) (*regexp.Regexp, error) {
	if len(chunks) == 0 {
		return regexp.Compile("^/?$")
	}

	var regExpStr strings.Builder
	regExpStr.WriteString("^")
	for _, currentChunk := range chunks {
		regExpStr.WriteString("/")
		regExpStr.WriteString(currentChunk.pattern)
	}

	regExpStr.WriteString("$")
	return regexp.Compile(regExpStr.String())
}
