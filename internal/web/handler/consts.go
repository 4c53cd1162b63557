package handler

const (
	// RouterRootPath is the root path inside a route group.
	RouterRootPath = "/"

	// IDParam names the path parameter carrying an entry id.
	IDParam = "id"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
