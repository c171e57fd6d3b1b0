// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	InvalidDirectoryId Id = iota + 1
	MissingFieldId
	WriteFailedId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink  // documentation for this failure kind
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue Markdown with a glamour style ("auto", "dark",
// "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	invalidDirectoryIssue = &Issue{
		id: InvalidDirectoryId,
		mdMsg: `
# Invalid directory!

The merge root must be an existing directory. boardmerge searches it
recursively for ` + "`*.json`" + ` files.

## Things you can try:
- Run the command from the folder that contains your ` + "`boards`" + ` directory
- Point boardmerge at another directory:
~~~
$ boardmerge merge --file-path path/to/boards
~~~
- Set a default root in your configuration:
~~~cue
merge: root: "path/to/boards"
~~~`,
	}

	missingFieldIssue = &Issue{
		id: MissingFieldId,
		mdMsg: `
# A board is missing its name or vendor!

Every board is sorted by ` + "`vendor`" + ` and then ` + "`name`" + `, so both fields
must be present and hold strings. Nothing was written.

## Things you can try:
- Open the file named above and add the missing field:
~~~json
{"boards": [{"name": "D4-200S", "vendor": "Boards R Us"}]}
~~~
- Move files that are not board lists out of the merge root`,
	}

	writeFailedIssue = &Issue{
		id: WriteFailedId,
		mdMsg: `
# Could not save the merged boards!

The merged document was assembled but the output file could not be written.

## Things you can try:
- Create the output folder, or let boardmerge create it:
~~~
$ boardmerge merge --create-output-dir
~~~
- Choose a writable folder with ` + "`--output-dir`" + `
- Check the folder permissions and free disk space`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be loaded.

## Things you can try:
- Check the file for CUE syntax errors
- Compare it with the defaults:
~~~
$ boardmerge config show
~~~
- Regenerate a default file (the existing one is kept):
~~~
$ boardmerge config init
~~~`,
	}

	issues = map[Id]*Issue{
		invalidDirectoryIssue.Id(): invalidDirectoryIssue,
		missingFieldIssue.Id():     missingFieldIssue,
		writeFailedIssue.Id():      writeFailedIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
	}
)

// Values returns every catalog issue ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
