package api

// CreateAnimationRequest is the body of POST /v1/animations. Frames are
// complete single-image GIFs, base64 encoded.
type CreateAnimationRequest struct {
	Frames [][]byte `json:"frames"`
	// Delays holds one delay per frame in hundredths of a second. When
	// omitted every frame uses Delay, or the server default.
	Delays      []uint16          `json:"delays,omitempty"`
	Delay       *uint16           `json:"delay,omitempty"`
	Loops       *int              `json:"loops,omitempty"`
	Disposal    *uint8            `json:"disposal,omitempty"`
	Transparent *TransparentColor `json:"transparent,omitempty"`
}

type TransparentColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

type AnimationResponse struct {
	ID        string   `json:"id"`
	Object    string   `json:"object"`
	CreatedAt int64    `json:"created_at"`
	Frames    int      `json:"frames"`
	Bytes     int      `json:"bytes"`
	Loops     uint16   `json:"loops"`
	Delays    []uint16 `json:"delays"`
	Width     uint16   `json:"width"`
	Height    uint16   `json:"height"`
}

type DeleteAnimationResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}
