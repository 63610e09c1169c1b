package meta

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a command description
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// FormatFromPath infers the description format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", errors.Newf(errors.ErrMetadataFormat, "unsupported description file %q", path).
			WithDetail("path", path)
	}
}

// Load reads a command description file
func Load(path string) (*Command, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetadataLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	return Parse(data, format)
}

// Parse decodes a command description
func Parse(data []byte, format Format) (*Command, error) {
	var (
		cmd *Command
		err error
	)
	switch format {
	case FormatYAML:
		cmd = &Command{}
		err = yaml.Unmarshal(data, cmd)
	case FormatTOML:
		cmd = &Command{}
		err = toml.Unmarshal(data, cmd)
	case FormatXML:
		cmd, err = parseXML(data)
	default:
		return nil, errors.Newf(errors.ErrMetadataFormat, "unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetadataParse, "invalid %s description", format)
	}
	if cmd.Name == "" {
		return nil, errors.New(errors.ErrMetadataParse, "description has no name")
	}
	return cmd, nil
}

// parseXML reads the element form:
//
//	<command name="area" version="1.0">
//	  <about>...</about>
//	  <option short="h" long="height" takes-value="true">
//	    <help>...</help><value-name>H</value-name>
//	    <possible-value>..</possible-value><default>9</default>
//	  </option>
//	  <positional required="false" last="false">
//	    <value-name>ROOT</value-name><help>...</help>
//	  </positional>
//	</command>
func parseXML(data []byte) (*Command, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.SelectElement("command")
	if root == nil {
		return nil, errors.New(errors.ErrMetadataParse, "missing <command> root element")
	}

	cmd := &Command{
		Name:    root.SelectAttrValue("name", ""),
		Author:  root.SelectAttrValue("author", ""),
		Version: root.SelectAttrValue("version", ""),
		About:   childText(root, "about"),
	}

	for _, el := range root.SelectElements("option") {
		takesValue, err := boolAttr(el, "takes-value")
		if err != nil {
			return nil, err
		}
		cmd.Options = append(cmd.Options, Option{
			Short:          el.SelectAttrValue("short", ""),
			Long:           el.SelectAttrValue("long", ""),
			Help:           childText(el, "help"),
			ValueNames:     childTexts(el, "value-name"),
			PossibleValues: childTexts(el, "possible-value"),
			DefaultValues:  childTexts(el, "default"),
			TakesValue:     takesValue,
		})
	}

	for _, el := range root.SelectElements("positional") {
		required, err := boolAttr(el, "required")
		if err != nil {
			return nil, err
		}
		last, err := boolAttr(el, "last")
		if err != nil {
			return nil, err
		}
		cmd.Positionals = append(cmd.Positionals, Positional{
			ValueNames: childTexts(el, "value-name"),
			Required:   required,
			Last:       last,
			Help:       childText(el, "help"),
		})
	}
	return cmd, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func childTexts(el *etree.Element, tag string) []string {
	var out []string
	for _, c := range el.SelectElements(tag) {
		out = append(out, strings.TrimSpace(c.Text()))
	}
	return out
}

func boolAttr(el *etree.Element, name string) (bool, error) {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrMetadataParse, "attribute %s of <%s>", name, el.Tag)
	}
	return v, nil
}
