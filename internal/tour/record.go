package tour

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rowanlith/sqltour/pkg/logger"
)

// RecordUser is the model the GORM stage maps. Same table, same three
// columns, declared through struct tags instead of a schema type.
type RecordUser struct {
	ID   int64     `gorm:"primaryKey;autoIncrement"`
	Name string    `gorm:"column:name"`
	DOB  time.Time `gorm:"column:dob"`
}

func (RecordUser) TableName() string { return "user" }

// Record is the fourth stage: a second object-mapping layer, this time a
// full ORM (GORM over the pure-Go SQLite driver) with migration-driven DDL
// and fetch-by-primary-key.
type Record struct{}

func (Record) Name() string { return "record" }

func (Record) Description() string {
	return "GORM models with migration-driven DDL"
}

func (Record) Run(ctx context.Context, env *Env) error {
	level := gormlogger.Warn
	if env.Echo {
		level = gormlogger.Info
	}

	gdb, err := gorm.Open(sqlite.Open(env.DBPath), &gorm.Config{
		Logger: logger.NewGormLogger(env.Logger, env.slowThreshold(), level),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	db := gdb.WithContext(ctx)

	if err := db.AutoMigrate(&RecordUser{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	alice := RecordUser{Name: "Alice", DOB: mustTime("2023-01-05T23:44:18+05:30")}
	if err := db.Create(&alice).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	var users []RecordUser
	if err := db.Where("id < ?", 100).Find(&users).Error; err != nil {
		return fmt.Errorf("query users: %w", err)
	}
	for _, u := range users {
		env.Logger.Info("user row",
			zap.Int64("id", u.ID),
			zap.String("name", u.Name),
			zap.Time("dob", u.DOB),
		)
	}

	bob := RecordUser{Name: "Bob", DOB: mustTime("2023-01-05T23:44:18+05:30")}
	if err := db.Create(&bob).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	var fetched RecordUser
	if err := db.First(&fetched, bob.ID).Error; err != nil {
		return fmt.Errorf("fetch by primary key: %w", err)
	}
	env.Logger.Info("user fetched by primary key",
		zap.Int64("id", fetched.ID),
		zap.String("name", fetched.Name),
	)

	if err := db.Migrator().DropTable(&RecordUser{}); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	return nil
}
