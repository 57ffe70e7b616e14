package format

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WriteEDN writes an EDN rendering of v. Structs go through their JSON tags first, so
// the result covers maps, vectors, strings, numbers, booleans and nil. Map keys become
// keywords and RFC 3339 timestamps become #inst literals.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	p := ednPrinter{pretty: pretty}
	p.value(x, 0)
	p.sb.WriteByte('\n')
	_, err = io.WriteString(w, p.sb.String())
	return err
}

type ednPrinter struct {
	sb     strings.Builder
	pretty bool
}

func (p *ednPrinter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		p.sb.WriteString("nil")
	case bool:
		p.sb.WriteString(strconv.FormatBool(t))
	case float64:
		if t == float64(int64(t)) {
			p.sb.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			p.sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
		}
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			p.sb.WriteString("#inst ")
			p.sb.WriteString(strconv.Quote(ts.UTC().Format(time.RFC3339Nano)))
			return
		}
		p.sb.WriteString(strconv.Quote(t))
	case []any:
		p.sb.WriteByte('[')
		for i, it := range t {
			p.sep(i, depth+1)
			p.value(it, depth+1)
		}
		p.close(len(t), depth)
		p.sb.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.sb.WriteByte('{')
		for i, k := range keys {
			p.sep(i, depth+1)
			p.sb.WriteByte(':')
			p.sb.WriteString(keyword(k))
			p.sb.WriteByte(' ')
			p.value(t[k], depth+1)
		}
		p.close(len(keys), depth)
		p.sb.WriteByte('}')
	}
}

// sep writes what goes before the i-th element of a collection.
func (p *ednPrinter) sep(i, depth int) {
	switch {
	case p.pretty:
		p.sb.WriteByte('\n')
		p.sb.WriteString(strings.Repeat("  ", depth))
	case i > 0:
		p.sb.WriteByte(' ')
	}
}

func (p *ednPrinter) close(n, depth int) {
	if p.pretty && n > 0 {
		p.sb.WriteByte('\n')
		p.sb.WriteString(strings.Repeat("  ", depth))
	}
}

// keyword turns a JSON field name into a kebab-case keyword: isComplete -> is-complete.
func keyword(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
