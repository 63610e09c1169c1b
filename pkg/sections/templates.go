package sections

// Section keys of the default help layout
const (
	KeyTitle        = "title"
	KeyAuthor       = "author"
	KeyIntroduction = "introduction"
	KeyUsage        = "usage"
	KeyPositionals  = "positionals"
	KeyOptions      = "options"
	KeyBugs         = "bugs"
)

// DefaultKeys is the default print order. Introduction and bugs have no
// default template, they are printed only once the caller provides one.
var DefaultKeys = []string{
	KeyTitle,
	KeyAuthor,
	KeyIntroduction,
	KeyUsage,
	KeyPositionals,
	KeyOptions,
	KeyBugs,
}

// TemplateTitle is the default template for the "title" section
const TemplateTitle = "# **${name}** ${version}"

// TemplateAuthor is the default template for the "author" section
const TemplateAuthor = `
*by* ${author}
`

// TemplateUsage is the default template for the "usage" section
const TemplateUsage = "\n**Usage:** `${name} [options]${positional-args}`\n"

// TemplatePositionals is the default template for the "positionals" section
const TemplatePositionals = "\n${positional-lines\n* `${key}` : ${help}\n}\n"

// TemplateOptions is the default template for the "options" section
const TemplateOptions = `
**Options:**

|short|long|value|description|
|:-:|:-|:-:|:-|
${option-lines
|${short}|${long}|${value}|${help}${possible_values}${default}|
}
`
