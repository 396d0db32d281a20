package sqldb

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"our_culture/be/biz/config"
	"our_culture/be/biz/model/storage"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var dbConn *gorm.DB

func Init() {
	db, err := Open(config.GetDBConf())
	if err != nil {
		panic(err)
	}
	if err := Migrate(db); err != nil {
		panic(err)
	}
	dbConn = db
}

func GetDbConn() *gorm.DB {
	return dbConn
}

func Open(conf config.DBConf) (*gorm.DB, error) {
	dialector, err := newDialector(conf)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driverName(conf) == DriverSQLite {
		// sqlite serializes writers; a single connection avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(64)
		sqlDB.SetMaxIdleConns(16)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	hlog.Infof("database opened, driver=%s", driverName(conf))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&storage.UserRecord{}, &storage.UserCredentialRecord{})
}

func newDialector(conf config.DBConf) (gorm.Dialector, error) {
	switch driverName(conf) {
	case DriverMySQL:
		return gormmysql.Open(mysqlDSN(conf)), nil
	case DriverPostgres:
		return postgres.Open(postgresDSN(conf)), nil
	case DriverSQLite:
		return sqlite.Open(conf.DBName), nil
	}
	return nil, fmt.Errorf("unsupported db driver: %q", conf.Driver)
}

func driverName(conf config.DBConf) string {
	if conf.Driver == "" {
		return DriverMySQL
	}
	return conf.Driver
}

func mysqlDSN(conf config.DBConf) string {
	mc := mysqldriver.NewConfig()
	mc.User = conf.Username
	mc.Passwd = conf.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", conf.IP, conf.Port)
	mc.DBName = conf.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func postgresDSN(conf config.DBConf) string {
	sslMode := conf.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Username, conf.Password),
		Host:     net.JoinHostPort(conf.IP, strconv.Itoa(conf.Port)),
		Path:     "/" + conf.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}
