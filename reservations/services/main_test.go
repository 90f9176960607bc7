package services

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"hotel-management-backend/config"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}
