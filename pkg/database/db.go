package database

import (
	"fmt"

	"Foodgram/config"
	"Foodgram/models"
	"Foodgram/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(conf.Database.Dsn())
	case config.DriverPostgres:
		dialector = postgres.Open(conf.Database.Dsn())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}

	db, err := Open(dialector)
	if err != nil {
		log.L.Error("failed to connect database", zap.String("driver", conf.Database.Driver), zap.Error(err))
		return nil, err
	}
	log.L.Info("connect database success", zap.String("driver", conf.Database.Driver))

	if conf.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			log.L.Error("failed to migrate database", zap.Error(err))
			return nil, err
		}
	}
	return db, nil
}

// Open opens a connection with the settings every store relies on: duplicate-key
// errors are translated to gorm.ErrDuplicatedKey so uniqueness violations can be
// reported as conflicts.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// followCheck 只在 postgres 上创建。MySQL 8 不允许 CHECK 引用带级联动作的外键列 (ER 3823)，
// sqlite 不支持 ALTER TABLE ADD CONSTRAINT。
const followCheck = "chk_follow_not_self"

// Migrate creates or updates the schema, including the unique pairs and, on
// postgres, the no-self-follow check.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	if db.Dialector.Name() != config.DriverPostgres {
		return nil
	}
	if db.Migrator().HasConstraint(&models.Follow{}, followCheck) {
		return nil
	}
	return db.Exec("ALTER TABLE follows ADD CONSTRAINT " + followCheck + " CHECK (follower_id <> author_id)").Error
}
