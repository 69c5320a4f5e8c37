package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves a processed list file into the archive folder. An
// existing file of the same name is kept and the new one gets a timestamp suffix.
func (p *implProcessor) moveToArchived(ctx context.Context, listPath string) error {
	if err := os.MkdirAll(p.cfg.Watch.Archived, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Watch.Archived, filepath.Base(listPath))
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(destPath)
		destPath = fmt.Sprintf("%s-%s%s", strings.TrimSuffix(destPath, ext), time.Now().Format("20060102-150405.000"), ext)
	}

	p.logger.Debug(ctx, "Archiving: %s -> %s", listPath, destPath)

	if err := os.Rename(listPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
