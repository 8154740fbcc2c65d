package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables naming the camera endpoint.
const (
	EnvUsername   = "CAMERA_USERNAME"
	EnvPassword   = "CAMERA_PASSWORD"
	EnvIP         = "CAMERA_IP"
	EnvPort       = "CAMERA_PORT"
	EnvStreamPath = "RTSP_STREAM_PATH"
)

// CameraConfig is the RTSP endpoint, assembled from the environment.
// Credentials never live in the YAML config file.
type CameraConfig struct {
	Username   string
	Password   string
	IP         string
	Port       string
	StreamPath string
}

// LoadCamera reads the camera endpoint from the environment. A .env
// file in the working directory is folded in first when present.
func LoadCamera() (CameraConfig, error) {
	_ = godotenv.Load()

	cfg := CameraConfig{
		Username:   os.Getenv(EnvUsername),
		Password:   os.Getenv(EnvPassword),
		IP:         os.Getenv(EnvIP),
		Port:       os.Getenv(EnvPort),
		StreamPath: os.Getenv(EnvStreamPath),
	}

	required := []struct {
		name, value string
	}{
		{EnvUsername, cfg.Username},
		{EnvPassword, cfg.Password},
		{EnvIP, cfg.IP},
		{EnvPort, cfg.Port},
		{EnvStreamPath, cfg.StreamPath},
	}
	for _, v := range required {
		if v.value == "" {
			return CameraConfig{}, fmt.Errorf("missing required environment variable %s", v.name)
		}
	}

	return cfg, nil
}

// RTSPURL returns the full stream URL including credentials. Never log
// this; use MaskedURL instead.
func (c CameraConfig) RTSPURL() string {
	return fmt.Sprintf("rtsp://%s:%s@%s:%s%s", c.Username, c.Password, c.IP, c.Port, c.StreamPath)
}

// MaskedURL returns the stream URL with the password hidden.
func (c CameraConfig) MaskedURL() string {
	return fmt.Sprintf("rtsp://%s:******@%s:%s%s", c.Username, c.IP, c.Port, c.StreamPath)
}
