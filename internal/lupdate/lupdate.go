// Package lupdate extracts translatable messages from Go sources and
// merges them into Qt Linguist catalogs.
package lupdate

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/snapcore/go-linguist"
)

// Message identifies an extracted message. Whether a message has
// plural forms depends on the calls using it, so it is recorded per
// location.
type Message struct {
	context string
	source  string
	comment string
}

func (m *Message) Less(other *Message) bool {
	if m.context != other.context {
		return m.context < other.context
	}
	if m.source != other.source {
		return m.source < other.source
	}
	return m.comment < other.comment
}

type Location struct {
	file     string
	line     int
	comments string
	numerus  bool
}

type visitor struct {
	*Extractor

	fset *token.FileSet
	file *ast.File
}

// commentLines returns the text of a comment group, one entry per non
// blank line. Lines of "//:" comments are flagged as meta.
func commentLines(cg *ast.CommentGroup) (lines []string, meta []string) {
	for _, comment := range cg.List {
		if strings.HasPrefix(comment.Text, "//:") {
			if line := strings.TrimSpace(comment.Text[3:]); line != "" {
				meta = append(meta, line)
			}
			continue
		}
		for _, line := range strings.Split(comment.Text, "\n") {
			line = strings.TrimPrefix(line, "//")
			line = strings.TrimPrefix(line, "/*")
			line = strings.TrimSuffix(line, "*/")
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, meta
}

func (v *visitor) findCommentsBefore(pos token.Position) *ast.CommentGroup {
	for i := len(v.file.Comments) - 1; i >= 0; i-- {
		cg := v.file.Comments[i]
		cgPos := v.fset.Position(cg.End())
		if cgPos.Line+1 == pos.Line {
			return cg
		}
	}
	return nil
}

// translatorComments returns the comments for translators preceding a
// call: "//:" comments always, others when they start with one of the
// comment tags.
func (v *visitor) translatorComments(pos token.Position) string {
	cg := v.findCommentsBefore(pos)
	if cg == nil {
		return ""
	}
	lines, meta := commentLines(cg)
	if len(lines) > 0 {
		keep := false
		for _, tag := range v.CommentTags {
			if strings.HasPrefix(lines[0], tag) {
				keep = true
				break
			}
		}
		if keep {
			meta = append(meta, lines...)
		}
	}
	return strings.Join(meta, "\n")
}

func (v *visitor) Visit(node ast.Node) ast.Visitor {
	// We're only interested in calls
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return v
	}

	for _, k := range v.Keywords {
		if !k.Match(call) {
			continue
		}

		msg, err := k.Extract(call)
		if err != nil {
			break
		}
		if msg.context == "" {
			msg.context = v.DefaultContext
			if msg.context == "" {
				msg.context = v.file.Name.Name
			}
		}

		pos := v.fset.Position(node.Pos())
		if _, ok := v.Messages[msg]; !ok {
			v.order = append(v.order, msg)
		}
		v.Messages[msg] = append(v.Messages[msg], Location{
			file:     pos.Filename,
			line:     pos.Line,
			comments: v.translatorComments(pos),
			numerus:  k.Numerus(),
		})
		break
	}
	return v
}

// Extractor collects the messages of Go source files.
type Extractor struct {
	Messages    map[Message][]Location
	Keywords    []*Keyword
	CommentTags []string
	Directories []string
	SortOutput  bool
	NoLocation  bool

	// DefaultContext is the context of messages extracted through a
	// keyword without a context argument. When empty, the package
	// name of the source file is used.
	DefaultContext string

	order []Message
}

// AddDefaultKeywords registers the translation functions of package
// linguist.
func (e *Extractor) AddDefaultKeywords() {
	for _, spec := range []string{
		"Tr:1c,2",
		"TrN:1c,2,3n",
		"TrC:1c,2,3d",
		"TrCN:1c,2,3d,4n",
	} {
		kw, err := ParseKeyword(spec)
		if err != nil {
			panic(err)
		}
		e.Keywords = append(e.Keywords, kw)
	}
}

func (e *Extractor) openFile(filename string) (f *os.File, err error) {
	if len(e.Directories) == 0 || filepath.IsAbs(filename) {
		return os.Open(filename)
	}
	for _, dir := range e.Directories {
		f, err = os.Open(filepath.Join(dir, filename))
		if !os.IsNotExist(err) {
			break
		}
	}
	return f, err
}

func (e *Extractor) parseStream(filename string, r io.Reader) (err error) {
	var v visitor
	v.Extractor = e
	v.fset = token.NewFileSet()
	v.file, err = parser.ParseFile(v.fset, filename, r, parser.ParseComments)
	if err != nil {
		return err
	}

	if e.Messages == nil {
		e.Messages = make(map[Message][]Location)
	}
	ast.Walk(&v, v.file)
	return nil
}

func (e *Extractor) ParseFile(filename string) error {
	f, err := e.openFile(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return e.parseStream(filename, f)
}

// Entries returns the extracted messages as untranslated catalog
// entries, in order of first appearance or sorted when SortOutput is
// set.
func (e *Extractor) Entries() []linguist.Entry {
	msgs := make([]Message, 0, len(e.Messages))
	seen := make(map[Message]bool, len(e.Messages))
	for _, msg := range e.order {
		if _, ok := e.Messages[msg]; ok && !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	// messages added by hand are not in order
	var rest []Message
	for msg := range e.Messages {
		if !seen[msg] {
			rest = append(rest, msg)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].Less(&rest[j])
	})
	msgs = append(msgs, rest...)
	if e.SortOutput {
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].Less(&msgs[j])
		})
	}

	entries := make([]linguist.Entry, 0, len(msgs))
	for _, msg := range msgs {
		locs := e.Messages[msg]
		if e.SortOutput {
			sort.SliceStable(locs, func(i, j int) bool {
				return locs[i].file < locs[j].file || locs[i].file == locs[j].file && locs[i].line < locs[j].line
			})
		}
		entry := linguist.Entry{
			Context: msg.context,
			Source:  msg.source,
			Comment: msg.comment,
			Status:  linguist.Unfinished,
		}
		var comments []string
		seenComments := map[string]bool{}
		for _, loc := range locs {
			// one call passing a count makes the message numerus
			entry.Numerus = entry.Numerus || loc.numerus
			if loc.comments != "" && !seenComments[loc.comments] {
				seenComments[loc.comments] = true
				comments = append(comments, loc.comments)
			}
			if !e.NoLocation {
				entry.Locations = append(entry.Locations, linguist.Location{File: loc.file, Line: loc.line})
			}
		}
		entry.ExtraComment = strings.Join(comments, "\n")
		entries = append(entries, entry)
	}
	return entries
}

// Write writes the extracted messages as an untranslated catalog for
// language.
func (e *Extractor) Write(w io.Writer, language string) error {
	return linguist.WriteTS(w, &linguist.File{
		Language: language,
		Entries:  e.Entries(),
	})
}
