// Package authz decides, for a route-declared resource type and a path
// parameter, whether the request's principal is the transitive owner of
// the identified resource.
package authz

// ResourceType selects which ownership chain a guarded route resolves.
type ResourceType int

const (
	// ResourceSelf guards routes whose id parameter names a user; the
	// owner is that user itself.
	ResourceSelf ResourceType = iota
	// ResourceColumn is owned directly via its user_id.
	ResourceColumn
	// ResourceCard is owned one hop away, through its column.
	ResourceCard
	// ResourceComment is owned two hops away, through card and column.
	ResourceComment
)

func (t ResourceType) String() string {
	switch t {
	case ResourceSelf:
		return "self"
	case ResourceColumn:
		return "column"
	case ResourceCard:
		return "card"
	case ResourceComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Binding is the per-route declaration of what an ownership check
// protects: the resource type and the path parameter carrying its id.
// SecondaryParam, used only on nested column routes, names an explicit
// target-user parameter; when set and present the column must belong to
// that user rather than to the caller.
type Binding struct {
	Type           ResourceType
	IDParam        string
	SecondaryParam string
}
