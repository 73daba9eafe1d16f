package jsonbind

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// DetectJSONDuplicateKeys scans JSON text for object members that repeat a
// key. Standard decoders keep the last value silently; callers that need the
// stricter reading run this scan before typed parsing. Returned issues carry
// the JSON Pointer of each repeated key. maxIssues <= 0 means unlimited.
func DetectJSONDuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), maxIssues)
}

// DetectJSONDuplicateKeysReader is the io.Reader form of
// DetectJSONDuplicateKeys.
func DetectJSONDuplicateKeysReader(r io.Reader, maxIssues int) (Issues, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()

	var (
		stack dupScanStack
		iss   Issues
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return iss, nil
		}
		if err != nil {
			return iss, singleIssue(CodeParseError, err.Error())
		}

		switch d := tok.(type) {
		case gojson.Delim:
			switch d {
			case '{':
				stack.push(true)
			case '[':
				stack.push(false)
			case '}', ']':
				stack.pop()
				stack.advanceTop()
			}
		case string:
			top := stack.top()
			if top != nil && top.isObject && !top.keyPending {
				top.key = d
				top.keyPending = true
				if _, dup := top.seen[d]; dup {
					iss = AppendIssues(iss, Issue{
						Path:    stack.pointer(),
						Code:    CodeDuplicateKey,
						Message: "duplicate object key",
					})
					if maxIssues > 0 && len(iss) >= maxIssues {
						return iss, nil
					}
				}
				top.seen[d] = struct{}{}
				continue
			}
			stack.advanceTop()
		default:
			stack.advanceTop()
		}
	}
}

type dupScanFrame struct {
	isObject   bool
	seen       map[string]struct{}
	key        string
	keyPending bool
	index      int
}

type dupScanStack []*dupScanFrame

func (s *dupScanStack) push(isObject bool) {
	f := &dupScanFrame{isObject: isObject}
	if isObject {
		f.seen = map[string]struct{}{}
	}
	*s = append(*s, f)
}

func (s *dupScanStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

func (s dupScanStack) top() *dupScanFrame {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// advanceTop marks one value consumed in the enclosing container: object
// frames release the pending key, array frames move to the next index.
func (s dupScanStack) advanceTop() {
	f := s.top()
	if f == nil {
		return
	}
	if f.isObject {
		f.keyPending = false
	} else {
		f.index++
	}
}

// pointer renders the JSON Pointer of the current position.
func (s dupScanStack) pointer() string {
	b := &strings.Builder{}
	for _, f := range s {
		if f.isObject {
			b.WriteString("/" + escapePointerToken(f.key))
		} else {
			b.WriteString("/" + strconv.Itoa(f.index))
		}
	}
	return b.String()
}

// escapePointerToken applies RFC 6901 escaping to a single reference token.
func escapePointerToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
