package security

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/depscan/analyzer/dependency"
)

const zapierList = `# known worm payloads
zapier-async-storage,1.0.3 | 1.0.2 | 1.0.1

webpack-loader-httpfile,0.2.1
evil-everything,
`

func newEntity(name string, ecosystem dependency.Ecosystem, classifications map[dependency.Classification]string) *dependency.Classified {
	dep := dependency.NewClassified(name, ecosystem)
	for classification, v := range classifications {
		dep.Add(classification, v, "test")
	}
	return dep
}

func TestFilter_Parse(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expectCount int
		expectLine  int
	}{
		{description: "well formed", input: zapierList, expectCount: 3},
		{description: "duplicate names counted once", input: "a,1.0.0\na,1.0.1\nb,2.0.0\n", expectCount: 2},
		{description: "missing comma", input: "a,1.0.0\n\nbroken-line\n", expectLine: 3},
		{description: "two commas", input: "a,1.0.0,1.0.1\n", expectLine: 1},
		{description: "comments and blanks only", input: "# nothing\n\n   \n"},
	}
	for _, testCase := range testCases {
		filter := New(nil)
		err := filter.Parse(strings.NewReader(testCase.input), "list.csv")
		if testCase.expectLine > 0 {
			var parseErr *ParseError
			if assert.ErrorAs(t, err, &parseErr, testCase.description) {
				assert.Equal(t, testCase.expectLine, parseErr.Line, testCase.description)
				assert.Equal(t, "list.csv", parseErr.Source, testCase.description)
			}
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectCount, filter.Count(), testCase.description)
	}
}

func TestFilter_Add(t *testing.T) {
	filter := New(nil)
	require.NoError(t, filter.Parse(strings.NewReader("a,1.0.0\na,1.0.1 | 1.0.2\nb,1.0.0\nb,\nc,\nc,3.0.0\n"), "list.csv"))
	a, ok := filter.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, []string{"1.0.0", "1.0.1", "1.0.2"}, a.SortedVersions())
	b, _ := filter.Lookup("b")
	assert.True(t, b.Wildcard())
	c, _ := filter.Lookup("c")
	assert.True(t, c.Wildcard())
}

func TestInfectedPackage_SortedVersions(t *testing.T) {
	infected := NewInfectedPackage("pkg", "1.10.0", "1.9.0", "bogus", "1.9.0-rc.1", "0.2.0")
	assert.Equal(t, []string{"bogus", "0.2.0", "1.9.0-rc.1", "1.9.0", "1.10.0"}, infected.SortedVersions())
}

func TestFilter_Status(t *testing.T) {
	filter := New(nil)
	require.NoError(t, filter.Parse(strings.NewReader(zapierList), "list.csv"))

	var testCases = []struct {
		description string
		entity      *dependency.Classified
		expect      Status
	}{
		{
			description: "installed infected version",
			entity:      newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Has: "1.0.2"}),
			expect:      Infected,
		},
		{
			description: "compound declared range is not evidence",
			entity:      newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Can: ">=1.0.0 <1.0.1"}),
			expect:      MatchPackage,
		},
		{
			description: "installed clean version",
			entity:      newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Has: "1.0.4"}),
			expect:      MatchPackage,
		},
		{
			description: "declared range admits infected version",
			entity:      newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Can: "^1.0.0"}),
			expect:      MatchVersion,
		},
		{
			description: "declared range excludes infected versions",
			entity:      newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Can: "^2.0.0"}),
			expect:      MatchPackage,
		},
		{
			description: "locked infected version",
			entity:      newEntity("webpack-loader-httpfile", dependency.Node, map[dependency.Classification]string{dependency.Should: "0.2.1"}),
			expect:      Infected,
		},
		{
			description: "installed clean but locked infected",
			entity: newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{
				dependency.Has:    "1.0.4",
				dependency.Should: "1.0.3",
			}),
			expect: Infected,
		},
		{
			description: "wildcard installed",
			entity:      newEntity("evil-everything", dependency.Node, map[dependency.Classification]string{dependency.Has: "9.9.9"}),
			expect:      Infected,
		},
		{
			description: "wildcard declared only",
			entity:      newEntity("evil-everything", dependency.Node, map[dependency.Classification]string{dependency.Can: "^1.0.0"}),
			expect:      MatchVersion,
		},
		{
			description: "unlisted name",
			entity:      newEntity("react", dependency.Node, map[dependency.Classification]string{dependency.Has: "18.2.0"}),
			expect:      None,
		},
		{
			description: "whitespace trimmed",
			entity:      newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Has: " 1.0.1 "}),
			expect:      Infected,
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, filter.Status(testCase.entity), testCase.description)
	}
}

func TestFilter_FilterAndSort(t *testing.T) {
	filter := New(nil)
	require.NoError(t, filter.Parse(strings.NewReader("pkg-b,1.0.0\npkg-a,1.0.0\nadvisory,2.0.0\n"), "list.csv"))
	entities := []*dependency.Classified{
		newEntity("pkg-b", dependency.Node, map[dependency.Classification]string{dependency.Should: "1.0.0"}),
		newEntity("pkg-a", dependency.Node, map[dependency.Classification]string{dependency.Can: "1.0.0"}),
		newEntity("pkg-b", dependency.Node, map[dependency.Classification]string{dependency.Has: "1.0.0"}),
		newEntity("advisory", dependency.Node, map[dependency.Classification]string{dependency.Can: "^2.0.0"}),
		newEntity("pkg-a", dependency.Node, map[dependency.Classification]string{dependency.Should: "1.0.0"}),
		newEntity("pkg-a", dependency.Node, map[dependency.Classification]string{dependency.Has: "1.0.0"}),
		newEntity("clean", dependency.Node, map[dependency.Classification]string{dependency.Has: "1.0.0"}),
	}
	actual := filter.FilterAndSort(entities)

	type entry struct {
		name     string
		priority int
	}
	var got []entry
	for _, dep := range actual {
		got = append(got, entry{dep.Name, dep.Priority()})
	}
	// Can "1.0.0" for pkg-a is a range match only
	assert.Equal(t, []entry{
		{"pkg-a", 0},
		{"pkg-b", 0},
		{"pkg-a", 1},
		{"pkg-b", 1},
	}, got)
}

func TestFilter_Annotate(t *testing.T) {
	filter := New(nil)
	require.NoError(t, filter.Parse(strings.NewReader(zapierList), "list.csv"))
	entities := []*dependency.Classified{
		newEntity("zapier-async-storage", dependency.Node, map[dependency.Classification]string{dependency.Has: "1.0.2"}),
		newEntity("react", dependency.Node, map[dependency.Classification]string{dependency.Has: "18.2.0"}),
	}
	filter.Annotate(entities)
	assert.Equal(t, "INFECTED", entities[0].Security)
	assert.Equal(t, "NONE", entities[1].Security)
}

func TestFilter_Load(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "infected.csv")
	require.NoError(t, os.WriteFile(location, []byte(zapierList), 0o644))

	filter := New(nil)
	require.NoError(t, filter.Load(ctx, location))
	assert.Equal(t, 3, filter.Count())

	assert.Error(t, New(nil).Load(ctx, filepath.Join(t.TempDir(), "missing.csv")))

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("ok,1.0.0\nnot-ok\n"), 0o644))
	var parseErr *ParseError
	err := New(nil).Load(ctx, bad)
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestStatus_Text(t *testing.T) {
	for _, status := range []Status{Infected, MatchVersion, MatchPackage, None} {
		text, err := status.MarshalText()
		require.NoError(t, err)
		var decoded Status
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, status, decoded)
	}
	assert.Equal(t, "MATCH_VERSION", MatchVersion.String())
	assert.True(t, Infected < MatchVersion && MatchVersion < MatchPackage && MatchPackage < None)
}
