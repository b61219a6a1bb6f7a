package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// RegisterDBTracing attaches the otelgorm plugin so every GORM query
// produces a child span. Query variables are excluded from span
// attributes; payment records carry resident emails and names.
func RegisterDBTracing(db *gorm.DB) error {
	return db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	))
}
