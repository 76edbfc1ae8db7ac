package event

// Window lifecycle events forwarded by the presentation layer. None of them
// touch scene state.

type Resized struct {
	Width  int
	Height int
}

type CloseRequested struct {
	Reason string
}
