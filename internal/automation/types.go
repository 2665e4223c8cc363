package automation

// DirectionalInput names a window/container and a compass direction.
type DirectionalInput struct {
	Direction string `json:"direction" jsonschema:"required,One of left right up down"`
}

// DirectionalOutput confirms the command was accepted.
type DirectionalOutput struct {
	OK bool `json:"ok"`
}

// ResizeInput names a direction to resize along and whether to grow or shrink.
type ResizeInput struct {
	Direction string `json:"direction" jsonschema:"required,One of left right up down"`
	Sizing    string `json:"sizing" jsonschema:"required,One of increase decrease"`
}

// ResizeOutput confirms the resize was accepted.
type ResizeOutput struct {
	OK bool `json:"ok"`
}

// IndexInput names a monitor or workspace index.
type IndexInput struct {
	Index int `json:"index" jsonschema:"required,Zero-based monitor or workspace index"`
}

// IndexOutput confirms the index-targeted command was accepted.
type IndexOutput struct {
	OK bool `json:"ok"`
}

// ChangeLayoutInput names the layout to switch the focused workspace to.
type ChangeLayoutInput struct {
	Layout string `json:"layout" jsonschema:"required,Layout name: bsp columns rows vertical_stack horizontal_stack ultrawide_vertical_stack grid or a configured custom layout"`
}

// ChangeLayoutOutput confirms the layout change was accepted.
type ChangeLayoutOutput struct {
	OK bool `json:"ok"`
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

// SimpleOutput confirms a no-argument command was accepted.
type SimpleOutput struct {
	OK bool `json:"ok"`
}

// FloatRuleInput names a match value for a float-on-open rule.
type FloatRuleInput struct {
	Value string `json:"value" jsonschema:"required,The class, executable name, or title substring to match"`
}

// FloatRuleOutput confirms the rule was registered.
type FloatRuleOutput struct {
	OK bool `json:"ok"`
}

// MonitorInfo mirrors one monitor entry from the daemon's state snapshot.
type MonitorInfo struct {
	ID               int    `json:"id"`
	Serial           string `json:"serial"`
	Left             int    `json:"left"`
	Top              int    `json:"top"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	WorkspaceCount   int    `json:"workspace_count"`
	FocusedWorkspace int    `json:"focused_workspace"`
}

// GetMonitorsOutput lists the monitors the daemon currently knows about.
type GetMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// GetStatusOutput reports the daemon's uptime and pause state.
type GetStatusOutput struct {
	UptimeSeconds int64 `json:"uptime_seconds"`
	Paused        bool  `json:"paused"`
}

// ListLayoutsOutput enumerates the layout names the daemon can switch to.
type ListLayoutsOutput struct {
	Layouts []string `json:"layouts"`
}

// PreviewLayoutInput asks the daemon to compute container rects for a layout
// without applying it.
type PreviewLayoutInput struct {
	MonitorIdx   int    `json:"monitor_index" jsonschema:"required,Zero-based monitor index"`
	WorkspaceIdx int    `json:"workspace_index" jsonschema:"required,Zero-based workspace index"`
	Layout       string `json:"layout" jsonschema:"required,Layout name to preview"`
}

// RectInfo is one arranged container rect.
type RectInfo struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// PreviewLayoutOutput is the arrangement the named layout would produce.
type PreviewLayoutOutput struct {
	Rects []RectInfo `json:"rects"`
}

// GetStateOutput carries the daemon's full state snapshot verbatim, already
// JSON-encoded by the daemon itself.
type GetStateOutput struct {
	State string `json:"state"`
}
