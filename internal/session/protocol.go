package session

// Inbound message types sent by the browser binding.
const (
	msgHello      = "hello"
	msgOpen       = "open"
	msgClose      = "close"
	msgKey        = "key"
	msgClick      = "click"
	msgTouchStart = "touchstart"
	msgTouchEnd   = "touchend"
	msgClearCache = "clear_cache"
)

// Outbound operation names applied by the browser binding.
const (
	OpVisible    = "visible"
	OpScrollLock = "scroll_lock"
	OpAriaHidden = "aria_hidden"
	OpMarker     = "marker"
	OpBody       = "body"
	OpFocus      = "focus"
	OpReinit     = "reinit"
	OpEvent      = "event"
	OpError      = "error"
	OpReady      = "ready"
)

// Inbound is a browser event. Only the fields of its Type are set.
type Inbound struct {
	Type string `json:"type"`

	// hello
	RootFound        bool `json:"root_found,omitempty"`
	BodyFound        bool `json:"body_found,omitempty"`
	FocusablesBefore int  `json:"focusables_before,omitempty"`
	FocusablesAfter  int  `json:"focusables_after,omitempty"`

	// open
	Href      string `json:"href,omitempty"`
	DataURL   string `json:"data_url,omitempty"`
	DataTitle string `json:"data_title,omitempty"`
	Text      string `json:"text,omitempty"`

	// key; Active is the index of the focused element among the overlay's
	// focusables, absent when focus is elsewhere.
	Key    string `json:"key,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Active *int   `json:"active,omitempty"`

	// click: "close", "backdrop" or "other"
	Target string `json:"target,omitempty"`

	// touchstart, touchend
	Y         float64 `json:"y,omitempty"`
	ScrollTop float64 `json:"scroll_top,omitempty"`
}

// Op is a DOM operation for the browser binding to apply.
type Op struct {
	Op string `json:"op"`

	On     *bool   `json:"on,omitempty"`
	Marker string  `json:"marker,omitempty"`
	HTML   *string `json:"html,omitempty"`
	Index  *int    `json:"index,omitempty"`

	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	Event     string `json:"event,omitempty"`
	FromCache bool   `json:"from_cache,omitempty"`

	Message string `json:"message,omitempty"`
	Session string `json:"session,omitempty"`
}

func toggleOp(name string, on bool) Op {
	return Op{Op: name, On: &on}
}

func markerOp(marker string, on bool) Op {
	return Op{Op: OpMarker, Marker: marker, On: &on}
}

func bodyOp(html string) Op {
	return Op{Op: OpBody, HTML: &html}
}

func focusOp(index int) Op {
	return Op{Op: OpFocus, Index: &index}
}
