package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mariodelgado/aquatrack-backend/pkg/config"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

// Record is one key-value row.
type Record struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName fixes the storage table.
func (Record) TableName() string {
	return "kv_records"
}

// GormStore persists collections in a single relational table, postgres by
// default and sqlite for local/test runs.
type GormStore struct {
	conn *gorm.DB
}

// NewGorm boots a GORM-backed store from configuration.
func NewGorm(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*GormStore, error) {
	var dialector gorm.Dialector
	switch {
	case cfg.UseSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case cfg.DSN != "":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("database DSN is required unless sqlite is enabled")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening kv connection: %w", err)
	}

	if !cfg.UseSQLite {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("getting sql db handle: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
		if cfg.ConnMaxIdleTime > 0 {
			sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
		}
	}

	store, err := NewGormWithConn(conn)
	if err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "kv store connection established")
	}
	return store, nil
}

// NewGormWithConn wraps an existing GORM connection, ensuring the table exists.
func NewGormWithConn(conn *gorm.DB) (*GormStore, error) {
	if conn == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	if err := conn.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrating kv table: %w", err)
	}
	return &GormStore{conn: conn}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record Record
	err := s.conn.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	record := Record{Key: key, Value: value}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.conn.WithContext(ctx).Where("key = ?", key).Delete(&Record{}).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
