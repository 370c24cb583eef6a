package corpus_test

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(LoaderTestSuite))

type LoaderTestSuite struct{}

func (s *LoaderTestSuite) TestExtractLinks(c *gc.C) {
	doc := `<!DOCTYPE html>
<html>
<head><title>1</title><script>var s = '<a href="script.html">';</script></head>
<body>
  <!-- <a href="comment.html">hidden</a> -->
  <h1>1</h1>
  <a class="nav" href="2.html">Two</a>
  <p>See <a   href="3.html" target="_blank">three</a> and <a href="2.html">two again</a>.</p>
  <a name="anchor-without-href">x</a>
</body>
</html>`

	links, err := corpus.ExtractLinks(strings.NewReader(doc))
	c.Assert(err, gc.IsNil)
	c.Assert(links, gc.DeepEquals, []string{"2.html", "3.html"})
}

func (s *LoaderTestSuite) TestLoadDir(c *gc.C) {
	dir := c.MkDir()
	files := map[string]string{
		"1.html":    `<a href="2.html">2</a><a href="1.html">self</a>`,
		"2.html":    `<a href="1.html">1</a><a href="3.html">3</a><a href="https://example.com">ext</a>`,
		"3.html":    `<p>no links here</p>`,
		"notes.txt": `<a href="1.html">ignored</a>`,
	}
	for name, contents := range files {
		c.Assert(os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644), gc.IsNil)
	}
	c.Assert(os.Mkdir(filepath.Join(dir, "sub.html"), 0o755), gc.IsNil)

	cp, err := corpus.LoadDir(dir, corpus.Config{})
	c.Assert(err, gc.IsNil)
	c.Assert(cp.Pages(), gc.DeepEquals, []corpus.Page{"1.html", "2.html", "3.html"})
	c.Assert(cp.Links("1.html"), gc.DeepEquals, []corpus.Page{"2.html"})
	c.Assert(cp.Links("2.html"), gc.DeepEquals, []corpus.Page{"1.html", "3.html"})
	c.Assert(cp.IsDangling("3.html"), gc.Equals, true)
}

func (s *LoaderTestSuite) TestLoadDirStrict(c *gc.C) {
	dir := c.MkDir()
	c.Assert(os.WriteFile(filepath.Join(dir, "1.html"), []byte(`<a href="2.html">2</a>`), 0o644), gc.IsNil)

	_, err := corpus.LoadDir(dir, corpus.Config{StrictMode: true})
	c.Assert(xerrors.Is(err, corpus.ErrInvalidCorpus), gc.Equals, true)
}

func (s *LoaderTestSuite) TestLoadMissingDir(c *gc.C) {
	_, err := corpus.LoadDir(filepath.Join(c.MkDir(), "missing"), corpus.Config{})
	c.Assert(xerrors.Is(err, os.ErrNotExist), gc.Equals, true)
}

func (s *LoaderTestSuite) TestLoadDirWithoutPages(c *gc.C) {
	_, err := corpus.LoadDir(c.MkDir(), corpus.Config{})
	c.Assert(xerrors.Is(err, corpus.ErrInvalidCorpus), gc.Equals, true)
}
