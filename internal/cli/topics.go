package cli

// topics are printed by `clihelp help <topic>`
var topics = map[string]string{
	"config": `# Configuration

**${name}** reads its settings from, in increasing priority:

1. built-in defaults
2. the file given with ` + "`--config`" + `, or ` + "`clihelp/config.toml`" + ` in the XDG config directories
3. environment variables starting with ` + "`CLIHELP_`" + `
4. command line flags

|key|description|
|:-|:-|
|full_width|print every section at the terminal width|
|max_width|cap the width used, 0 for none|
|theme|auto, dark, light, notty, ascii, dracula, tokyo-night, pink|
|sections.order|section keys in print order|
|sections.disabled|section keys not printed|
|sections.templates.KEY|template of the section KEY|

Nested keys are separated by a double underscore in the environment:
` + "`CLIHELP_SECTIONS__ORDER=title,usage,options`" + `.
`,

	"sections": `# Sections

Help is printed section by section, in this default order:

* ` + "`title`" + ` : name and version
* ` + "`author`" + ` : the author line
* ` + "`introduction`" + ` : empty until a template is given
* ` + "`usage`" + ` : usage line built from the positionals
* ` + "`positionals`" + ` : one line per positional argument
* ` + "`options`" + ` : a table with one row per option
* ` + "`bugs`" + ` : empty until a template is given

A section without a template is skipped.
`,
}
