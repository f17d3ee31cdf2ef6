package proposals

import (
	"fmt"
	"path"
	"strings"
)

// ModuleResolver turns a bare plugin identifier into an absolute one.
//
// It is the host's concern; implementations must be safe for concurrent use.
type ModuleResolver interface {
	ResolveModule(module string) (string, error)
}

// ModuleResolverFunc adapts a function to [ModuleResolver].
type ModuleResolverFunc func(module string) (string, error)

// ResolveModule calls f(module).
func (f ModuleResolverFunc) ResolveModule(module string) (string, error) {
	return f(module)
}

// DirResolver resolves identifiers to <Root>/node_modules/<module>.
// It only joins paths; it never touches the file system.
type DirResolver struct {
	Root string
}

// ResolveModule implements [ModuleResolver].
func (r DirResolver) ResolveModule(module string) (string, error) {
	if !path.IsAbs(r.Root) {
		return "", fmt.Errorf("root %q is not absolute", r.Root)
	}
	if module == "" || strings.HasPrefix(module, ".") || path.IsAbs(module) {
		return "", fmt.Errorf("invalid module identifier %q", module)
	}
	return path.Join(r.Root, "node_modules", module), nil
}
