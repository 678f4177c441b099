package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/clients/rosterclient"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ImportTemplatesResult summarizes a rotation template import
type ImportTemplatesResult struct {
	Imported int
}

// ImportTemplatesStore defines the database operations needed for importing templates
type ImportTemplatesStore interface {
	UpsertRotationTemplates(templates []db.RotationTemplate) error
}

// ImportTemplates loads a rotation template CSV into the database. Rows
// without an id are assigned a fresh one; existing ids are updated in place.
func ImportTemplates(ctx context.Context, database ImportTemplatesStore, logger *zap.Logger, path string) (*ImportTemplatesResult, error) {
	logger.Debug("Starting importTemplates", zap.String("path", path))

	templates, err := rosterclient.ReadTemplates(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rotation templates: %w", err)
	}
	logger.Debug("Parsed rotation templates", zap.Int("count", len(templates)))

	records := make([]db.RotationTemplate, len(templates))
	for i, template := range templates {
		if template.ID == "" {
			template.ID = uuid.New().String()
		}
		records[i] = db.RotationTemplate{
			ID:                          template.ID,
			Name:                        template.Name,
			RequiresProcedureCredential: template.RequiresProcedureCredential,
		}
	}

	if err := database.UpsertRotationTemplates(records); err != nil {
		return nil, fmt.Errorf("failed to save rotation templates: %w", err)
	}

	logger.Info("Rotation templates imported", zap.Int("count", len(records)))

	return &ImportTemplatesResult{Imported: len(records)}, nil
}
