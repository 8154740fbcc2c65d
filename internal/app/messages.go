package app

import "image"

// FrameLoadedMsg carries a decoded frame image, or the reason the
// frame could not be shown.
type FrameLoadedMsg struct {
	Name  string
	Image image.Image
	Err   error
}
