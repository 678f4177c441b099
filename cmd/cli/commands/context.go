package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}
