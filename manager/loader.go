package manager

import (
	"path/filepath"
	"plugin"

	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/pluginapi"
)

// Loader resolves a library name to a Library, abstracting the actual
// dynamic-loading mechanics (spec.md treats this as an external black box;
// this interface is the Go-native shape of that box).
type Loader interface {
	Load(libraryName string) (Library, error)
}

// Library is an opened plugin library. Plugin returns the single Plugin
// object it emits; Close releases the library when the Manager no longer
// needs it.
type Library interface {
	Plugin() (pluginapi.Plugin, error)
	Close() error
}

// PluginSymbolName is the exported symbol a shared library built for plume
// must expose: a package-level variable of type pluginapi.Plugin.
const PluginSymbolName = "Plugin"

// NativeLoader resolves library names to paths under Dir and loads them
// with the standard library's plugin package (plugin.Open / Lookup), the
// closest the Go ecosystem gets to the spec's "load a shared library by
// name, resolve a named plugin object" contract. hashicorp/go-plugin is
// deliberately not used here: its subprocess-plus-gRPC model is a different
// architecture than the in-process, shared-memory view this spec requires.
type NativeLoader struct {
	Dir string
}

// NewNativeLoader returns a NativeLoader resolving library names under dir.
func NewNativeLoader(dir string) *NativeLoader {
	return &NativeLoader{Dir: dir}
}

func (l *NativeLoader) Load(libraryName string) (Library, error) {
	path := libraryName
	if l.Dir != "" && !filepath.IsAbs(libraryName) {
		path = filepath.Join(l.Dir, libraryName)
	}
	p, err := plugin.Open(path)
	if err != nil {
		return nil, perr.Wrap(perr.LibraryLoad, err, "failed to open plugin library %q", path)
	}
	return &nativeLibrary{p: p}, nil
}

type nativeLibrary struct {
	p *plugin.Plugin
}

func (l *nativeLibrary) Plugin() (pluginapi.Plugin, error) {
	sym, err := l.p.Lookup(PluginSymbolName)
	if err != nil {
		return nil, perr.Wrap(perr.LibraryLoad, err, "library does not export a %q symbol", PluginSymbolName)
	}
	plug, ok := sym.(pluginapi.Plugin)
	if !ok {
		if ptr, ok := sym.(*pluginapi.Plugin); ok {
			return *ptr, nil
		}
		return nil, perr.New(perr.LibraryLoad, "exported %q symbol does not implement pluginapi.Plugin", PluginSymbolName)
	}
	return plug, nil
}

// Close is a no-op: the standard library's plugin package never unloads a
// library once opened.
func (l *nativeLibrary) Close() error { return nil }

// FakeLoader resolves library names to in-process Plugin values, for tests
// that need to exercise the Manager without touching the filesystem.
type FakeLoader struct {
	Plugins map[string]pluginapi.Plugin
}

// NewFakeLoader returns a FakeLoader serving the given name-to-plugin map.
func NewFakeLoader(plugins map[string]pluginapi.Plugin) *FakeLoader {
	return &FakeLoader{Plugins: plugins}
}

func (l *FakeLoader) Load(libraryName string) (Library, error) {
	p, ok := l.Plugins[libraryName]
	if !ok {
		return nil, perr.New(perr.LibraryLoad, "fake loader has no plugin registered for library %q", libraryName)
	}
	return &fakeLibrary{plugin: p}, nil
}

type fakeLibrary struct {
	plugin pluginapi.Plugin
}

func (l *fakeLibrary) Plugin() (pluginapi.Plugin, error) { return l.plugin, nil }
func (l *fakeLibrary) Close() error                      { return nil }
