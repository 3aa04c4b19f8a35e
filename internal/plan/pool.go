package plan

// fillerFeature is one entry of the rotating demo pool.
type fillerFeature struct {
	Name string
	ID   string
}

// fillerPool is the fixed, ordered pool used to top up sections that end a
// deduplication pass with too few feature mentions. The rotation offset
// (section index + filler index) spreads picks across sections so adjacent
// sections don't all lead with the same demo feature.
var fillerPool = []fillerFeature{
	{Name: "CSS Grid", ID: "css.properties.grid"},
	{Name: "Container Queries", ID: "css.container-queries"},
	{Name: ":has()", ID: "css.selectors.has"},
	{Name: "CSS Nesting", ID: "css.nesting"},
	{Name: "Popover API", ID: "html.elements.popover"},
	{Name: "View Transitions", ID: "css.view-transitions"},
	{Name: "Subgrid", ID: "css.properties.subgrid"},
	{Name: "Scroll Snap", ID: "css.scroll-snap"},
}

// PoolSize returns the number of entries in the demo filler pool.
func PoolSize() int {
	return len(fillerPool)
}
