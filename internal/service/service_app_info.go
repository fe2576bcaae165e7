package service

import (
	"context"

	"github.com/photark/albumsync/internal/logger"
)

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService reports the build version injected at link time. An
// empty version is reported as "N/A" rather than rejected: the daemon is
// routinely run from a plain `go build` without ldflags.
func NewAppInfoService(version string, logger *logger.Logger) AppInfoService {
	if version == "" {
		version = "N/A"
	}

	return &appInfoService{
		appVersion: version,
		logger:     logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
