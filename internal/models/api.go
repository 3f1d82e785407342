package models

// InfoRequest is the body of POST /info.
type InfoRequest struct {
	URL string `json:"url"`
}

// DownloadRequest is the body of POST /download.
type DownloadRequest struct {
	URL      string `json:"url"`
	FormatID string `json:"format_id"`
}

// Ack acknowledges an accepted download. It carries no completion
// channel: the status stream is the only place the outcome shows up.
type Ack struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// FormatOption is one selectable format in the /info response.
type FormatOption struct {
	FormatID   string `json:"format_id"`
	Resolution string `json:"resolution"`
	Ext        string `json:"ext"`
	Filesize   int64  `json:"filesize"`
	Note       string `json:"note,omitempty"`
}

// VideoInfo is the /info response. Formats are ordered by descending
// filesize.
type VideoInfo struct {
	Title     string         `json:"title"`
	Thumbnail string         `json:"thumbnail"`
	Duration  int            `json:"duration"`
	Formats   []FormatOption `json:"formats"`
}
