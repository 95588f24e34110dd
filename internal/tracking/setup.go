package tracking

import (
	"log"

	"github.com/baderkothman/admin-dashboard/internal/config"
	"github.com/baderkothman/admin-dashboard/internal/db"
)

// DefaultEvaluator is the production evaluator, wired to the shared gorm
// handle in Init().
var DefaultEvaluator *Evaluator

func Init(mode config.EvalMode) {
	if err := db.EnsureSchema(db.DB, "tracking"); err != nil {
		log.Fatal("Failed to ensure schema tracking: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Location{}, &Alert{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	DefaultEvaluator = NewEvaluator(&GormStore{DB: db.DB}, mode)
}
