// Package testenv boots the process-wide config, redis and database against
// miniredis and an in-memory sqlite so package tests run without services.
package testenv

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"our_culture/be/biz/config"
	db_redis "our_culture/be/biz/db/redis"
	"our_culture/be/biz/db/sqldb"
	"our_culture/be/biz/util/random"

	"github.com/alicebob/miniredis/v2"
)

// Setup writes a config file pointing redis at a fresh miniredis, appends
// extra yaml to it and initializes config and redis.
func Setup(t *testing.T, extra string) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	content := fmt.Sprintf("redis:\n  ip: %q\n  port: %s\n", mr.Host(), mr.Port()) + extra

	p := filepath.Join(t.TempDir(), "deploy.yml")
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	config.Init(p)
	db_redis.Init()
	return mr
}

// SQLite returns yaml selecting a private in-memory sqlite database.
func SQLite(name string) string {
	return fmt.Sprintf("db:\n  driver: %q\n  db_name: %q\n",
		sqldb.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

// SetupWithDB is Setup plus a private in-memory sqlite database.
func SetupWithDB(t *testing.T, extra string) *miniredis.Miniredis {
	t.Helper()

	mr := Setup(t, SQLite("testdb_"+random.RandStr(12))+extra)
	sqldb.Init()
	return mr
}
