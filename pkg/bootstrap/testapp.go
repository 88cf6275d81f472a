package bootstrap

import (
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"maritime-threats-backend/pkg/dispatcher"
	"maritime-threats-backend/pkg/inmem"
)

type Mocks struct {
	DBMock    sqlmock.Sqlmock
	CacheMock redismock.ClientMock
}

// NewTestApp builds an Application backed by sqlmock and redismock so
// service and controller tests run without external processes.
func NewTestApp() (*Application, *Mocks) {
	mockDB, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		panic(err)
	}

	conn, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cache, cacheMock := redismock.NewClientMock()

	store := inmem.NewInMemoryStore()
	disp := dispatcher.NewDispatcher(store)
	go disp.Start()

	app := &Application{
		Env: &Env{
			Server: ServerEnv{Port: 8080, TimeZone: "UTC"},
		},
		Conn:       conn,
		Cache:      cache,
		Engine:     gin.Default(),
		RedisLock:  NewRdLock(cache),
		Store:      store,
		Dispatcher: disp,
	}

	return app, &Mocks{
		DBMock:    dbMock,
		CacheMock: cacheMock,
	}
}
