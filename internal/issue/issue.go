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
	HomeNotFoundId Id = iota + 1
	ToolImageMissingId
	PathBuildFailedId
	BundledVersionUnknownId
	ConfigLoadFailedId
	InvalidVersionId
	InvalidPathModeId
	CommandFailedId
)

type (
	// Id identifies a catalogued issue.
	Id int

	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// HttpLink is a documentation or external reference.
	HttpLink string

	// Issue is a catalogued failure with Markdown guidance.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
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

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the glamour style at stylePath ("dark",
// "light", "notty" or a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	homeNotFoundIssue = &Issue{
		id: HomeNotFoundId,
		mdMsg: `
# The nodepin home could not be located!

nodepin keeps every toolchain image under a single home directory and could not
determine where it is.

## Things you can try:
- Point nodepin at an existing home:
~~~
$ export NODEPIN_HOME="$HOME/.nodepin"
~~~
- Or set it in your configuration:
~~~
$ nodepin config show
~~~
    and add ` + "`home: \"/path/to/.nodepin\"`" + ` to config.cue.`,
	}

	toolImageMissingIssue = &Issue{
		id: ToolImageMissingId,
		mdMsg: `
# A pinned tool is not installed!

The selected version has no image directory in the nodepin home, so running it
would fall through to whatever is next on PATH.

## Things you can try:
- Install the pinned versions before running commands with them
- Check the versions you passed with ` + "`--node`, `--npm` and `--yarn`",
		extLinks: []HttpLink{"https://nodejs.org/en/download/releases"},
	}

	pathBuildFailedIssue = &Issue{
		id: PathBuildFailedId,
		mdMsg: `
# PATH could not be built!

One of the directories nodepin needs to put on PATH contains a character that
cannot appear in a PATH entry (the list separator or a NUL byte).

## Things you can try:
- Move the nodepin home to a directory without ':' (';' on Windows) in its name
- Run with ` + "`--verbose`" + ` to see which directory was rejected`,
	}

	bundledVersionUnknownIssue = &Issue{
		id: BundledVersionUnknownId,
		mdMsg: `
# The bundled package manager version is unknown!

No package manager version was pinned, so nodepin looked up the one that ships
with the selected Node release and found no record of it.

## Things you can try:
- Pin the package manager explicitly:
~~~
$ nodepin resolve npm --node 18.0.0 --npm 9.8.1
~~~
- Reinstall the Node version so its inventory record is written again
- Yarn is never bundled with Node; pass ` + "`--yarn`" + ` to select it`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

nodepin could not load its configuration file.

## Things you can try:
- Check the syntax of your config.cue
- Show where nodepin looks for it:
~~~
$ nodepin config path
~~~
- Recreate a default configuration:
~~~
$ nodepin config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	invalidVersionIssue = &Issue{
		id: InvalidVersionId,
		mdMsg: `
# Invalid version!

Versions must be full semantic versions such as ` + "`18.0.0`" + ` or ` + "`v20.11.1`" + `.
Ranges and partial versions (` + "`18`, `^18.0.0`" + `) are resolved before nodepin
builds an environment and are not accepted here.`,
		extLinks: []HttpLink{"https://semver.org"},
	}

	invalidPathModeIssue = &Issue{
		id: InvalidPathModeId,
		mdMsg: `
# Invalid PATH mode!

` + "`path_mode`" + ` must be one of:
- ` + "`standard`" + ` - remove nodepin shims from PATH before adding the toolchain
- ` + "`global-package`" + ` - leave PATH untouched apart from the toolchain prefix`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# The command could not be started!

nodepin built the toolchain PATH but the command itself could not be executed.

## Things you can try:
- Check that the command exists in one of the image bin directories:
~~~
$ nodepin bins --node <version>
~~~
- Separate nodepin flags from the command with ` + "`--`",
	}

	issues = map[Id]*Issue{
		homeNotFoundIssue.Id():          homeNotFoundIssue,
		toolImageMissingIssue.Id():      toolImageMissingIssue,
		pathBuildFailedIssue.Id():       pathBuildFailedIssue,
		bundledVersionUnknownIssue.Id(): bundledVersionUnknownIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		invalidVersionIssue.Id():        invalidVersionIssue,
		invalidPathModeIssue.Id():       invalidPathModeIssue,
		commandFailedIssue.Id():         commandFailedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	vs := maps.Values(issues)
	slices.SortFunc(vs, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return vs
}

// Get returns the catalogued issue with the given Id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
