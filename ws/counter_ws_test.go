package ws

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jangbo/entity"
	"jangbo/repository"
	"jangbo/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestHub(t *testing.T) (*CounterHub, entity.Store) {
	t.Helper()
	// Shared-cache DSN: the handler goroutines hit the database from their
	// own connections.
	db, err := gorm.Open(sqlite.Open("file:counterws?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Store{}, &entity.Product{},
		&entity.Order{}, &entity.OrderProduct{}, &entity.Payment{},
	))

	merchant := entity.User{Email: "m@example.com", Name: "M", Role: entity.RoleMerchant}
	require.NoError(t, db.Create(&merchant).Error)
	store := entity.Store{Name: "Store", MerchantID: merchant.ID}
	require.NoError(t, db.Create(&store).Error)

	counters := services.NewCounterService(
		repository.NewOrderRepository(db),
		repository.NewStoreRepository(db),
	)
	hub := NewCounterHub(counters)
	go hub.Run()
	return hub, store
}

func TestServeSendsSnapshotThenBroadcasts(t *testing.T) {
	hub, store := newTestHub(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/stores/:id/counters", hub.Serve)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		fmt.Sprintf("/ws/stores/%d/counters", store.ID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// The snapshot arrives before the connection joins the broadcast set.
	var board services.StoreBoardOut
	require.NoError(t, conn.ReadJSON(&board))
	assert.Equal(t, store.ID, board.StoreID)
	require.Len(t, board.Counters, 10)

	// The snapshot is written before registration, so give the hub a beat
	// to pick the registration up before broadcasting.
	time.Sleep(100 * time.Millisecond)

	hub.BoardChanged(store.ID)
	board = services.StoreBoardOut{}
	require.NoError(t, conn.ReadJSON(&board))
	assert.Equal(t, store.ID, board.StoreID)
}
