package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm handle shared by every repository.
type DB struct {
	DB *gorm.DB
}

func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DataBase, cfg.Port, cfg.SSLMode)
}

// URL is the same connection in the URL form golang-migrate expects.
func URL(cfg config.DBConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DataBase, cfg.SSLMode)
}

func NewDatabase(cfg config.DBConfig, log *zap.Logger) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("connected to database", zap.String("host", cfg.Host), zap.String("database", cfg.DataBase))
	return &DB{DB: gdb}, nil
}

// Ping checks the connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Transaction runs fn inside a database transaction. fn receives a DB bound
// to the transaction so repositories can be rebuilt on top of it.
func (d *DB) Transaction(ctx context.Context, fn func(tx *DB) error) error {
	return d.DB.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&DB{DB: gtx})
	})
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Conflict reports a unique-index violation as errs.ErrConflict. Other
// errors pass through unchanged.
func Conflict(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", errs.ErrConflict, what)
	}
	return err
}
