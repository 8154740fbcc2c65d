// Package camera adapts an RTSP video stream into a capture source,
// encoding frames to JPEG in memory at a configured quality.
package camera

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/sinterlabs/fornax/internal/capture"
)

// ErrStreamEnded reports that the stream stopped yielding frames. The
// capture loop treats it as a normal end of capture.
var ErrStreamEnded = errors.New("stream stopped yielding frames")

// Stream is an open RTSP connection. Not safe for concurrent use; the
// capture loop is its only reader.
type Stream struct {
	cap     *gocv.VideoCapture
	mat     gocv.Mat
	quality int
	log     *slog.Logger
}

var _ capture.Source = (*Stream)(nil)

// Open connects to url. quality is the JPEG encoder setting (1-100).
func Open(url string, quality int, log *slog.Logger) (*Stream, error) {
	cap, err := gocv.OpenVideoCapture(url)
	if err != nil {
		return nil, fmt.Errorf("open rtsp stream: %w", err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, errors.New("rtsp stream did not open")
	}
	return &Stream{cap: cap, mat: gocv.NewMat(), quality: quality, log: log}, nil
}

// Read pulls the next frame and encodes it. A decoder hiccup or an encode
// failure yields an empty frame, which the capture loop skips and retries;
// ErrStreamEnded means the stream is gone.
func (s *Stream) Read() (capture.Frame, error) {
	if !s.cap.Read(&s.mat) {
		return capture.Frame{}, ErrStreamEnded
	}
	now := time.Now()
	if s.mat.Empty() {
		return capture.Frame{CapturedAt: now}, nil
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, s.mat,
		[]int{gocv.IMWriteJpegQuality, s.quality})
	if err != nil {
		s.log.Warn("jpeg encode failed, skipping frame", "error", err)
		return capture.Frame{CapturedAt: now}, nil
	}
	defer buf.Close()

	// The buffer is freed on Close, so hand the loop its own copy.
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return capture.Frame{Data: data, CapturedAt: now}, nil
}

// Close releases the frame buffer and the stream handle.
func (s *Stream) Close() error {
	if err := s.mat.Close(); err != nil {
		s.cap.Close()
		return fmt.Errorf("release frame buffer: %w", err)
	}
	if err := s.cap.Close(); err != nil {
		return fmt.Errorf("close stream: %w", err)
	}
	return nil
}
