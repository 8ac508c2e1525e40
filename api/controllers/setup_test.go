package controllers

import (
	"testing"
	"time"

	apitesting "github.com/alex-pricope/coop-voting-system/api/controllers/testing"
	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/storage"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *voting.Service, *apitesting.Clock) {
	t.Helper()
	logging.Log = logrus.New()

	clock := apitesting.NewClock(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC))
	svc := voting.NewService(storage.NewMemoryBackend(), voting.WithClock(clock.Now))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMembersController(svc.Members).RegisterRoutes(r)
	NewAgendasController(svc.Agendas, svc.Sessions).RegisterRoutes(r)
	NewSessionsController(svc.Sessions, svc.Votes, svc.Results).RegisterRoutes(r)

	return r, svc, clock
}
