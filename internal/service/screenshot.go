package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/logger"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/webclient"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"go.uber.org/zap"
)

// TakeScreenshot captures a website with a headless browser and stores the
// file name on the record. Strictly best effort: an unreachable site or a
// failing browser never surfaces to the caller, the website simply keeps no
// screenshot.
func TakeScreenshot(website *model.Website, actorID uint) {
	if website == nil || website.URL == "" {
		return
	}

	// skip sites that do not answer, the browser would hang on them
	resp := webclient.Get(website.URL, nil)
	if resp == nil {
		return
	}
	resp.Body.Close()

	cfg := config.Get()

	if err := os.MkdirAll(cfg.Screenshots.Path, 0o755); err != nil {
		logger.Error("create screenshot directory failed", zap.Error(err))
		return
	}

	filename := fmt.Sprintf("website_%d.png", website.ID)
	target := filepath.Join(cfg.Screenshots.Path, filename)

	cmd := exec.Command(cfg.Screenshots.Browser,
		"--headless",
		"--disable-gpu",
		"--window-size=1920,1080",
		"--screenshot="+target,
		website.URL,
	)

	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		logger.Error("start screenshot browser failed", zap.Error(err))
		return
	}

	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("screenshot browser failed",
				zap.String("url", website.URL), zap.Error(err))
			return
		}
	case <-time.After(60 * time.Second):
		_ = cmd.Process.Kill()
		logger.Error("screenshot browser timed out", zap.String("url", website.URL))
		return
	}

	website.Screenshot = &filename
	if err := repository.UpdateWebsite(website, actorID); err != nil {
		logger.Error("store screenshot reference failed", zap.Error(err))
	}
}

// RemoveScreenshot deletes the stored screenshot file of a website, if any.
// Best effort like capture, a missing file is not an error.
func RemoveScreenshot(website *model.Website) {
	if website == nil || website.Screenshot == nil || *website.Screenshot == "" {
		return
	}

	target := filepath.Join(config.Get().Screenshots.Path, *website.Screenshot)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		logger.Error("remove screenshot failed",
			zap.String("file", target), zap.Error(err))
	}
}
