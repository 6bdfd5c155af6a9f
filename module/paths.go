package module

import "strings"

// classPackage returns the package portion of a dotted class name, e.g.
// "com.foo.Bar" -> "com.foo". A name with no dot belongs to the default
// package.
func classPackage(className string) string {
	if idx := strings.LastIndex(className, "."); idx >= 0 {
		return className[:idx]
	}
	return ""
}

// resourcePackage returns the package portion of a slash-separated resource
// path, e.g. "com/foo/bar.xml" -> "com.foo", mirroring classPackage for the
// resource namespace.
func resourcePackage(resourceName string) string {
	name := strings.TrimPrefix(resourceName, "/")
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return ""
	}
	return strings.ReplaceAll(name[:idx], "/", ".")
}
