package markdown

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rogersnm/opbatch/internal/logging"
	"github.com/rogersnm/opbatch/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/multierr"
)

const (
	batchTitle   = "# Operation batch"
	emptyBatch   = "_No operations._"
	sectionBreak = "---"
	jsonLang     = "json"
)

// ErrNoBlocks is reported when non-blank text holds no JSON code block.
var ErrNoBlocks = errors.New("no JSON code blocks found")

// Header is the frontmatter written at the top of a formatted batch.
type Header struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Operations  int       `yaml:"operations"`
}

// Format renders ops as a markdown document: a frontmatter header, then one
// section per operation holding its description and indented JSON. Output is
// byte-identical for identical ops and generatedAt.
func Format(ops []model.Operation, generatedAt time.Time) (string, error) {
	var body strings.Builder
	body.WriteString(batchTitle + "\n")
	if len(ops) == 0 {
		body.WriteString("\n" + emptyBatch + "\n")
	}
	for i, op := range ops {
		data, err := IndentJSON(op)
		if err != nil {
			return "", fmt.Errorf("formatting operation %d: %w", i+1, err)
		}
		if i > 0 {
			body.WriteString("\n" + sectionBreak + "\n")
		}
		fence := fenceFor(data)
		fmt.Fprintf(&body, "\n## Operation %d: %s\n\n%s\n\n%s%s\n%s\n%s\n",
			i+1, inlineText(string(op.Kind())), inlineText(model.Describe(op)), fence, jsonLang, data, fence)
	}

	header := Header{GeneratedAt: generatedAt.UTC(), Operations: len(ops)}
	out, err := MarshalFrontmatter(header, body.String())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Result is what Parse recovers from a document.
type Result struct {
	Operations []model.Operation
	Errors     []string
	// Header is nil when the document has no recognizable header.
	Header *Header
}

// Err combines the parse errors, or returns nil when there are none.
func (r Result) Err() error {
	var err error
	for _, msg := range r.Errors {
		err = multierr.Append(err, errors.New(msg))
	}
	return err
}

// Parse recovers operations from every ```json fenced block in text, in
// order. Prose, headings and other code blocks are ignored. A block that
// cannot be decoded adds one error and contributes no operations; scanning
// always continues. Blank text, or a header declaring zero operations,
// yields an empty result without errors.
func Parse(text string) Result {
	res := Result{Operations: []model.Operation{}, Errors: []string{}}
	if strings.TrimSpace(text) == "" {
		return res
	}

	body := text
	if h, rest, ok := splitHeader(text); ok {
		res.Header = h
		body = rest
	}

	blocks := jsonBlocks([]byte(body))
	if len(blocks) == 0 {
		if res.Header != nil && res.Header.Operations == 0 {
			return res
		}
		res.Errors = append(res.Errors, ErrNoBlocks.Error())
		return res
	}

	log := logging.GetLogger("markdown")
	for i, block := range blocks {
		ops, err := DecodeOperations(block)
		if err != nil {
			log.Debug().Int("block", i+1).Err(err).Msg("Skipping code block")
			res.Errors = append(res.Errors, fmt.Sprintf("Code block %d: %v", i+1, err))
			continue
		}
		res.Operations = append(res.Operations, ops...)
	}
	return res
}

type rawHeader struct {
	GeneratedAt *time.Time `yaml:"generated_at"`
	Operations  *int       `yaml:"operations"`
}

// splitHeader strips a batch header. Frontmatter that is malformed or not a
// batch header leaves the text untouched.
func splitHeader(text string) (*Header, string, bool) {
	if !strings.HasPrefix(text, "---") {
		return nil, text, false
	}
	meta, body, err := ParseFrontmatter[rawHeader](strings.NewReader(text))
	if err != nil || meta.Operations == nil {
		return nil, text, false
	}
	h := &Header{Operations: *meta.Operations}
	if meta.GeneratedAt != nil {
		h.GeneratedAt = *meta.GeneratedAt
	}
	return h, body, true
}

// jsonBlocks returns the contents of the fenced code blocks tagged json, in
// document order, including blocks nested in lists and quotes.
func jsonBlocks(source []byte) [][]byte {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks [][]byte
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if strings.EqualFold(string(fenced.Language(source)), jsonLang) {
			var buf bytes.Buffer
			lines := fenced.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			blocks = append(blocks, buf.Bytes())
		}
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// DecodeOperations decodes JSON holding one operation object or an array of
// them. Any failing element fails the whole input.
func DecodeOperations(data []byte) ([]model.Operation, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("malformed document")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := checkShape(data); err != nil {
		return nil, err
	}

	if data[0] == '[' {
		var ops []model.Operation
		if err := json.Unmarshal(data, &ops); err != nil {
			return nil, err
		}
		return ops, nil
	}
	var op model.Operation
	if err := json.Unmarshal(data, &op); err != nil {
		return nil, err
	}
	return []model.Operation{op}, nil
}

// IndentJSON renders op as two-space indented JSON without HTML escaping.
func IndentJSON(op model.Operation) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(op); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// inlineText makes s safe as one line of markdown prose: line breaks
// collapse, and characters that could open a code block, an HTML block or any
// other block construct are backslash-escaped.
func inlineText(s string) string {
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}), " ")

	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '\\' || r == '`' || r == '<' || r == '~':
			sb.WriteByte('\\')
		case i == 0 && r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// fenceFor picks a backtick fence longer than any backtick run in data so
// string contents can never close the block early.
func fenceFor(data []byte) string {
	longest, run := 0, 0
	for _, c := range data {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
