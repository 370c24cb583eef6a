package corpus

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/xerrors"
)

// anchorPolicy strips everything except anchors and their href attribute so
// that links inside scripts, comments or other markup are never picked up.
var anchorPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("href").OnElements("a")
	return p
}()

// LoadDir builds a corpus out of the HTML documents in dir. Each file with a
// .html extension becomes a page named after the file and every anchor href
// in it becomes a link. Links that do not name another file of the
// directory are handled according to cfg.
func LoadDir(dir string, cfg Config) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("load corpus from %q: %w", dir, err)
	}

	b := NewBuilder(cfg)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, xerrors.Errorf("load corpus from %q: %w", dir, err)
		}
		links, err := ExtractLinks(f)
		_ = f.Close()
		if err != nil {
			return nil, xerrors.Errorf("extract links from %q: %w", entry.Name(), err)
		}

		src := Page(entry.Name())
		b.AddPage(src)
		for _, dst := range links {
			b.AddLink(src, Page(dst))
		}
	}

	return b.Build()
}

// ExtractLinks returns the distinct href values of all anchors in the HTML
// document read from r, in document order.
func ExtractLinks(r io.Reader) ([]string, error) {
	sanitized := anchorPolicy.SanitizeReader(r)

	var (
		links []string
		seen  = make(map[string]struct{})
		tok   = html.NewTokenizer(bytes.NewReader(sanitized.Bytes()))
	)
	for {
		switch tok.Next() {
		case html.ErrorToken:
			if err := tok.Err(); err != io.EOF {
				return nil, err
			}
			return links, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := tok.TagAttr()
				if string(key) == "href" {
					href := string(val)
					if _, dup := seen[href]; !dup {
						seen[href] = struct{}{}
						links = append(links, href)
					}
				}
				if !more {
					break
				}
			}
		}
	}
}
