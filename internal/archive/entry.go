package archive

import (
	"path"
	"strings"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// Entry is one regular file of an archive, classified by how it is rebuilt.
// The concrete type is one of Primary, Auxiliary or Passthrough.
type Entry interface {
	Name() string
	Content() []byte
	isEntry()
}

// Primary is the project document. There is exactly one per archive.
type Primary struct {
	name    string
	content []byte
}

// Auxiliary is an XML entry opted in through an include pattern.
type Auxiliary struct {
	name    string
	content []byte
}

// Passthrough is copied into the rebuilt archive unchanged.
type Passthrough struct {
	name    string
	content []byte
}

func (e Primary) Name() string    { return e.name }
func (e Primary) Content() []byte { return e.content }
func (Primary) isEntry()          {}

func (e Auxiliary) Name() string    { return e.name }
func (e Auxiliary) Content() []byte { return e.content }
func (Auxiliary) isEntry()          {}

func (e Passthrough) Name() string    { return e.name }
func (e Passthrough) Content() []byte { return e.content }
func (Passthrough) isEntry()          {}

// classifier decides the Entry kind for an archive member.
type classifier struct {
	documentExt string
	include     []string
}

func (c classifier) isPrimary(name string) bool {
	return strings.EqualFold(path.Ext(name), c.documentExt)
}

// classify returns the Entry for name. Include patterns are matched against
// the full entry name and against its base name, so "*.qml" also selects
// "styles/roads.qml".
func (c classifier) classify(name string, content []byte) Entry {
	if c.isPrimary(name) {
		return Primary{name: name, content: content}
	}
	if c.included(name) && hasXMLExt(name) {
		return Auxiliary{name: name, content: content}
	}
	return Passthrough{name: name, content: content}
}

func (c classifier) included(name string) bool {
	base := path.Base(name)
	for _, pattern := range c.include {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func hasXMLExt(name string) bool {
	ext := path.Ext(name)
	for _, candidate := range qgistidy.XMLEntryExts {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}
