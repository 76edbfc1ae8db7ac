package component

// Label names an entity so scripts can address it.
type Label struct {
	Name string
}
