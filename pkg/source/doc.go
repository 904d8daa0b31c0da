// Package source declares the collaborator contracts the loader calls to
// touch the outside world: reading a path, splitting front matter from a
// body, and expanding a glob pattern. Default implementations live under
// internal/ and are wired by pkg/loader; callers override them per loader or
// per call.
package source
